package seqs

import (
	"errors"
	"reflect"
	"testing"

	"github.com/me/qpshotgun/pkg/model"
)

func TestRunPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/S1_L001.fastq.gz", "S1_L001"},
		{"/data/S1_L001.fastq", "S1_L001"},
		{"S1_L001.FASTQ.GZ", "S1_L001"},
		{"/data/S1_L001.FastQ.gz", "S1_L001"},
		{"/deep/nested/dir/sample.v2.fastq.gz", "sample.v2"},
		{"/data/no_suffix.txt", "no_suffix.txt"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := RunPrefix(tt.path); got != tt.want {
			t.Errorf("RunPrefix(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMatch_ForwardOnlySortedOrder(t *testing.T) {
	forward := []string{"S2_L001.fastq.gz", "S1_L001.fastq.gz"}
	samples := map[string]string{
		"S1_L001": "SampleA",
		"S2_L001": "SampleB",
	}

	got, err := Match(forward, nil, samples)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}

	want := []Assignment{
		{Path: "S1_L001.fastq.gz", RunPrefix: "S1_L001", Sample: "SampleA"},
		{Path: "S2_L001.fastq.gz", RunPrefix: "S2_L001", Sample: "SampleB"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match() = %v, want %v", got, want)
	}
}

func TestMatch_PairedReadsShareSampleName(t *testing.T) {
	forward := []string{"/in/S1_L001_R1.fastq.gz", "/in/S2_L001_R1.fastq.gz"}
	reverse := []string{"/in/S2_L001_R2.fastq.gz", "/in/S1_L001_R2.fastq.gz"}
	samples := map[string]string{
		"S1_L001_R1": "SampleA",
		"S2_L001_R1": "SampleB",
	}

	got, err := Match(forward, reverse, samples)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d assignments, want 4", len(got))
	}

	// Mates are adjacent: forward at 2k, reverse at 2k+1, same sample.
	for i := 0; i < len(got); i += 2 {
		if got[i].Sample != got[i+1].Sample {
			t.Errorf("pair %d: forward sample %q != reverse sample %q",
				i/2, got[i].Sample, got[i+1].Sample)
		}
	}
	if got[1].Path != "/in/S1_L001_R2.fastq.gz" {
		t.Errorf("reverse mate of S1 = %q, want /in/S1_L001_R2.fastq.gz", got[1].Path)
	}
	if got[1].RunPrefix != "S1_L001_R2" {
		t.Errorf("reverse run prefix = %q, want S1_L001_R2", got[1].RunPrefix)
	}
}

func TestMatch_MismatchedLengths(t *testing.T) {
	forward := []string{"a_R1.fastq", "b_R1.fastq"}
	reverse := []string{"a_R2.fastq"}

	_, err := Match(forward, reverse, map[string]string{})

	var perr *model.PairingError
	if !errors.As(err, &perr) {
		t.Fatalf("Match returned %v, want *model.PairingError", err)
	}
	if len(perr.Forward) != 2 || len(perr.Reverse) != 1 {
		t.Errorf("PairingError lists = %d/%d files, want 2/1", len(perr.Forward), len(perr.Reverse))
	}
}

func TestMatch_LeftoverMappingEntries(t *testing.T) {
	forward := []string{"S1_L001.fastq.gz"}
	samples := map[string]string{
		"S1_L001": "SampleA",
		"S3_L001": "SampleC",
		"S4_L001": "SampleD",
	}

	_, err := Match(forward, nil, samples)

	var uerr *model.UnmatchedSamplesError
	if !errors.As(err, &uerr) {
		t.Fatalf("Match returned %v, want *model.UnmatchedSamplesError", err)
	}
	want := []string{"S3_L001", "S4_L001"}
	if !reflect.DeepEqual(uerr.Prefixes, want) {
		t.Errorf("Prefixes = %v, want %v", uerr.Prefixes, want)
	}
	if len(uerr.Files) != 0 {
		t.Errorf("Files = %v, want none", uerr.Files)
	}
}

func TestMatch_FileWithNoMappingEntry(t *testing.T) {
	// S9 has no sample; every mapping entry is consumed. The original
	// implementation dropped such files silently — here both sides of the
	// mismatch are reported.
	forward := []string{"S1_L001.fastq.gz", "S9_L001.fastq.gz"}
	samples := map[string]string{"S1_L001": "SampleA"}

	_, err := Match(forward, nil, samples)

	var uerr *model.UnmatchedSamplesError
	if !errors.As(err, &uerr) {
		t.Fatalf("Match returned %v, want *model.UnmatchedSamplesError", err)
	}
	if !reflect.DeepEqual(uerr.Files, []string{"S9_L001.fastq.gz"}) {
		t.Errorf("Files = %v, want [S9_L001.fastq.gz]", uerr.Files)
	}
}

func TestMatch_DoesNotMutateInputs(t *testing.T) {
	forward := []string{"b.fastq", "a.fastq"}
	samples := map[string]string{"a": "SA", "b": "SB"}

	if _, err := Match(forward, nil, samples); err != nil {
		t.Fatalf("Match returned error: %v", err)
	}

	if forward[0] != "b.fastq" {
		t.Error("Match sorted the caller's forward slice in place")
	}
	if len(samples) != 2 {
		t.Errorf("Match consumed the caller's mapping: %v", samples)
	}
}

func TestMatch_Idempotent(t *testing.T) {
	forward := []string{"S2_L001.fastq.gz", "S1_L001.fastq.gz"}
	samples := map[string]string{"S1_L001": "SampleA", "S2_L001": "SampleB"}

	first, err := Match(forward, nil, samples)
	if err != nil {
		t.Fatalf("first Match returned error: %v", err)
	}
	second, err := Match(forward, nil, samples)
	if err != nil {
		t.Fatalf("second Match returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Match is not deterministic: %v vs %v", first, second)
	}
}
