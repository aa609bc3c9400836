// Package seqs matches per-sample sequence files to their owning samples.
//
// Sequencing runs name their output files after a per-sample "run prefix";
// the sample mapping file associates each run prefix with a sample name.
// This package derives run prefixes from file paths and pairs forward (and
// optionally reverse) read files with sample names so that one command can
// be generated per sample.
package seqs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/me/qpshotgun/pkg/model"
)

// Assignment ties one sequence file to its run prefix and sample name.
// Forward and reverse mates of the same pair carry the same sample name so
// downstream tools merge their results into one per-sample output.
type Assignment struct {
	Path      string
	RunPrefix string
	Sample    string
}

// RunPrefix derives the run prefix from a sequence file path: the base
// name with everything from the first case-insensitive ".fastq" occurrence
// stripped. This covers .fastq and .fastq.gz in any case mix. A name with
// no FASTQ suffix is returned whole.
func RunPrefix(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(strings.ToLower(base), ".fastq"); i >= 0 {
		return base[:i]
	}
	return base
}

// Match pairs forward (and optional reverse) read files with sample names.
//
// Both lists are sorted lexicographically before pairing; mates are
// expected to share the same sort rank so that index i of the sorted
// reverse list is the mate of index i of the sorted forward list. A
// non-empty reverse list of a different length fails with
// *model.PairingError.
//
// Each forward file's run prefix is looked up in samples; a hit produces
// an Assignment for the forward file and, when present, one for its
// reverse mate under the same sample name, and consumes the mapping entry.
// After the pass, any unconsumed mapping entries or any forward files with
// no mapping entry fail the call with *model.UnmatchedSamplesError naming
// both sides.
//
// Match is pure: the inputs are never modified and no I/O is performed.
// Calling it twice with the same inputs yields the same assignments.
func Match(forward, reverse []string, samples map[string]string) ([]Assignment, error) {
	fwd := append([]string(nil), forward...)
	sort.Strings(fwd)

	var rev []string
	if len(reverse) > 0 {
		if len(forward) != len(reverse) {
			return nil, &model.PairingError{Forward: fwd, Reverse: reverse}
		}
		rev = append([]string(nil), reverse...)
		sort.Strings(rev)
	}

	// Consume entries off a copy; the caller owns the mapping.
	remaining := make(map[string]string, len(samples))
	for k, v := range samples {
		remaining[k] = v
	}

	var assignments []Assignment
	var unmatched []string
	for i, path := range fwd {
		prefix := RunPrefix(path)
		sample, ok := remaining[prefix]
		if !ok {
			unmatched = append(unmatched, path)
			continue
		}
		assignments = append(assignments, Assignment{Path: path, RunPrefix: prefix, Sample: sample})
		if rev != nil {
			assignments = append(assignments, Assignment{
				Path:      rev[i],
				RunPrefix: RunPrefix(rev[i]),
				Sample:    sample,
			})
		}
		delete(remaining, prefix)
	}

	if len(remaining) > 0 || len(unmatched) > 0 {
		leftover := make([]string, 0, len(remaining))
		for prefix := range remaining {
			leftover = append(leftover, prefix)
		}
		sort.Strings(leftover)
		return nil, &model.UnmatchedSamplesError{Prefixes: leftover, Files: unmatched}
	}

	return assignments, nil
}
