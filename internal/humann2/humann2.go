// Package humann2 adapts the HUMAnN2 gene-family quantifier as a plugin
// tool.
package humann2

import (
	"fmt"
	"path/filepath"

	"github.com/me/qpshotgun/internal/plugin"
	"github.com/me/qpshotgun/internal/seqs"
	"github.com/me/qpshotgun/pkg/model"
)

// Name is the command name as registered on the job-control server.
const Name = "HUMAnN2"

// Commands generates one humann2 invocation per matched sequence file.
// Forward and reverse mates share an --output-basename (the sample name),
// so humann2 merges their results into one per-sample output.
//
// Flag order is fixed — external tools parse these strings literally:
// input, output, output-basename, output-format, then the configured
// parameters in their mapping order.
func Commands(forward, reverse []string, samples map[string]string, outDir string, params model.Parameters) ([]string, error) {
	assignments, err := seqs.Match(forward, reverse, samples)
	if err != nil {
		return nil, err
	}

	commands := make([]string, 0, len(assignments))
	for _, a := range assignments {
		commands = append(commands, fmt.Sprintf(
			`humann2 --input "%s" --output "%s" --output-basename "%s" --output-format biom%s`,
			a.Path, filepath.Join(outDir, a.RunPrefix), a.Sample, params.Flags()))
	}
	return commands, nil
}

// Tool returns the orchestrator descriptor for HUMAnN2. The merge and
// re-normalize hooks are not implemented for this tool yet, so both steps
// are no-ops.
func Tool() plugin.Tool {
	return plugin.Tool{
		Name:     Name,
		Commands: Commands,
	}
}

// DefaultParameters builds the default option set for HUMAnN2. The
// reference database locations come from explicit configuration.
func DefaultParameters(nucleotideDB, proteinDB string) model.Parameters {
	return model.NewParameters(
		model.Option{Name: "nucleotide-database", Value: nucleotideDB},
		model.Option{Name: "protein-database", Value: proteinDB},
		model.Option{Name: "pathways", Value: "metacyc"},
		model.Option{Name: "memory-use", Value: "minimum"},
		model.Option{Name: "threads", Value: "1"},
	)
}
