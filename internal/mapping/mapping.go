// Package mapping loads sample-mapping files.
//
// A mapping file is a tab-separated table with one row per sample. The
// first column carries the sample name and a "run_prefix" column carries
// the filename prefix the sequencing run used for that sample's files.
package mapping

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SampleNamesByRunPrefix reads a mapping file and returns run prefix →
// sample name. Duplicate run prefixes are an error: a prefix that maps to
// two samples makes file matching ambiguous.
func SampleNamesByRunPrefix(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read mapping file %s: %w", path, err)
		}
		return nil, fmt.Errorf("mapping file %s is empty", path)
	}

	header := strings.Split(scanner.Text(), "\t")
	prefixCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "run_prefix") {
			prefixCol = i
			break
		}
	}
	if prefixCol < 0 {
		return nil, fmt.Errorf("mapping file %s has no run_prefix column", path)
	}

	samples := make(map[string]string)
	line := 1
	for scanner.Scan() {
		line++
		row := scanner.Text()
		if strings.TrimSpace(row) == "" {
			continue
		}
		fields := strings.Split(row, "\t")
		if len(fields) <= prefixCol {
			return nil, fmt.Errorf("mapping file %s line %d: %d columns, run_prefix is column %d",
				path, line, len(fields), prefixCol+1)
		}

		sample := strings.TrimSpace(fields[0])
		prefix := strings.TrimSpace(fields[prefixCol])
		if sample == "" || prefix == "" {
			return nil, fmt.Errorf("mapping file %s line %d: empty sample name or run_prefix", path, line)
		}
		if other, dup := samples[prefix]; dup {
			return nil, fmt.Errorf("mapping file %s: run_prefix %q used by samples %q and %q",
				path, prefix, other, sample)
		}
		samples[prefix] = sample
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mapping file %s: %w", path, err)
	}

	return samples, nil
}
