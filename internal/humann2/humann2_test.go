package humann2

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/me/qpshotgun/pkg/model"
)

func TestCommands_ForwardOnly(t *testing.T) {
	forward := []string{"S2_L001.fastq.gz", "S1_L001.fastq.gz"}
	samples := map[string]string{
		"S1_L001": "SampleA",
		"S2_L001": "SampleB",
	}
	params := model.NewParameters(
		model.Option{Name: "Threads", Value: "4"},
		model.Option{Name: "Mode", Value: ""},
	)

	got, err := Commands(forward, nil, samples, "/out", params)
	if err != nil {
		t.Fatalf("Commands returned error: %v", err)
	}

	want := []string{
		`humann2 --input "S1_L001.fastq.gz" --output "` + filepath.Join("/out", "S1_L001") +
			`" --output-basename "SampleA" --output-format biom --Threads "4"`,
		`humann2 --input "S2_L001.fastq.gz" --output "` + filepath.Join("/out", "S2_L001") +
			`" --output-basename "SampleB" --output-format biom --Threads "4"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestCommands_PairedReads(t *testing.T) {
	forward := []string{"/in/S1_L001_R1.fastq.gz"}
	reverse := []string{"/in/S1_L001_R2.fastq.gz"}
	samples := map[string]string{"S1_L001_R1": "SampleA"}

	got, err := Commands(forward, reverse, samples, "/out", model.NewParameters())
	if err != nil {
		t.Fatalf("Commands returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d commands, want 2 (one per mate)", len(got))
	}

	// Both mates write under the same sample basename, separate run-prefix dirs.
	for _, cmd := range got {
		if !strings.Contains(cmd, `--output-basename "SampleA"`) {
			t.Errorf("command %q does not share the sample basename", cmd)
		}
	}
	if !strings.Contains(got[0], `--input "/in/S1_L001_R1.fastq.gz"`) {
		t.Errorf("first command = %q, want forward input", got[0])
	}
	if !strings.Contains(got[1], `--input "/in/S1_L001_R2.fastq.gz"`) {
		t.Errorf("second command = %q, want reverse input", got[1])
	}
	if !strings.Contains(got[1], `--output "`+filepath.Join("/out", "S1_L001_R2")+`"`) {
		t.Errorf("second command = %q, want reverse run-prefix output dir", got[1])
	}
}

func TestCommands_MismatchedPairing(t *testing.T) {
	forward := []string{"a_R1.fastq", "b_R1.fastq"}
	reverse := []string{"a_R2.fastq"}

	_, err := Commands(forward, reverse, map[string]string{}, "/out", model.NewParameters())

	var perr *model.PairingError
	if !errors.As(err, &perr) {
		t.Fatalf("Commands returned %v, want *model.PairingError", err)
	}
}

func TestCommands_UnmatchedSamples(t *testing.T) {
	forward := []string{"S1_L001.fastq.gz"}
	samples := map[string]string{"S1_L001": "SampleA", "S3_L001": "SampleC"}

	_, err := Commands(forward, nil, samples, "/out", model.NewParameters())

	var uerr *model.UnmatchedSamplesError
	if !errors.As(err, &uerr) {
		t.Fatalf("Commands returned %v, want *model.UnmatchedSamplesError", err)
	}
	if !reflect.DeepEqual(uerr.Prefixes, []string{"S3_L001"}) {
		t.Errorf("Prefixes = %v, want [S3_L001]", uerr.Prefixes)
	}
}

func TestCommands_Idempotent(t *testing.T) {
	forward := []string{"S2_L001.fastq.gz", "S1_L001.fastq.gz"}
	samples := map[string]string{"S1_L001": "SampleA", "S2_L001": "SampleB"}
	params := model.NewParameters(model.Option{Name: "threads", Value: "2"})

	first, err := Commands(forward, nil, samples, "/out", params)
	if err != nil {
		t.Fatalf("first Commands returned error: %v", err)
	}
	second, err := Commands(forward, nil, samples, "/out", params)
	if err != nil {
		t.Fatalf("second Commands returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Commands is not deterministic:\n%v\n%v", first, second)
	}
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters("/refs/chocophlan", "/refs/uniref")

	if v, _ := p.Get("nucleotide-database"); v != "/refs/chocophlan" {
		t.Errorf("nucleotide-database = %q", v)
	}
	if v, _ := p.Get("protein-database"); v != "/refs/uniref" {
		t.Errorf("protein-database = %q", v)
	}
	opts := p.Options()
	if opts[0].Name != "nucleotide-database" {
		t.Errorf("first option = %q, want nucleotide-database", opts[0].Name)
	}
}

func TestTool_NoPostProcessingHooks(t *testing.T) {
	tool := Tool()
	if tool.Name != Name {
		t.Errorf("Name = %q, want %q", tool.Name, Name)
	}
	if tool.Merger != nil || tool.Renormalizer != nil {
		t.Error("humann2 merge/re-normalize hooks should be nil until implemented")
	}
}
