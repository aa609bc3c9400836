// Package shogun adapts the SHOGUN functional/taxonomic profiler as a
// plugin tool.
package shogun

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/me/qpshotgun/internal/plugin"
	"github.com/me/qpshotgun/internal/seqs"
	"github.com/me/qpshotgun/pkg/model"
)

// Name is the command name as registered on the job-control server.
const Name = "Shogun"

// Commands generates one shogun invocation per matched sequence file, in
// the same fixed flag order as the other tools: input, output,
// output-basename, output-format, then the configured parameters.
func Commands(forward, reverse []string, samples map[string]string, outDir string, params model.Parameters) ([]string, error) {
	assignments, err := seqs.Match(forward, reverse, samples)
	if err != nil {
		return nil, err
	}

	commands := make([]string, 0, len(assignments))
	for _, a := range assignments {
		commands = append(commands, fmt.Sprintf(
			`shogun --input "%s" --output "%s" --output-basename "%s" --output-format biom%s`,
			a.Path, filepath.Join(outDir, a.RunPrefix), a.Sample, params.Flags()))
	}
	return commands, nil
}

// Tool returns the orchestrator descriptor for SHOGUN. Merge and
// re-normalize are not implemented for this tool yet, so both steps are
// no-ops.
func Tool() plugin.Tool {
	return plugin.Tool{
		Name:     Name,
		Commands: Commands,
	}
}

// ListDatabases returns the selectable reference databases under dbRoot:
// one per subdirectory, sorted by name.
func ListDatabases(dbRoot string) ([]string, error) {
	entries, err := os.ReadDir(dbRoot)
	if err != nil {
		return nil, fmt.Errorf("list shogun databases: %w", err)
	}

	var dbs []string
	for _, e := range entries {
		if e.IsDir() {
			dbs = append(dbs, e.Name())
		}
	}
	sort.Strings(dbs)
	return dbs, nil
}

// DefaultParameters builds the default option set for SHOGUN. The database
// root is explicit configuration; the default database is the "shogun"
// directory under it.
func DefaultParameters(dbRoot string) model.Parameters {
	return model.NewParameters(
		model.Option{Name: "Database", Value: filepath.Join(dbRoot, "shogun")},
		model.Option{Name: "Aligner tool", Value: "bowtie2"},
		model.Option{Name: "Taxonomy Level", Value: "all"},
		model.Option{Name: "Number of threads", Value: "1"},
	)
}
