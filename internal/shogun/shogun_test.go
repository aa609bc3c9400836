package shogun

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/me/qpshotgun/pkg/model"
)

func TestCommands_FlagOrder(t *testing.T) {
	forward := []string{"S1_L001.fastq.gz"}
	samples := map[string]string{"S1_L001": "SampleA"}
	params := model.NewParameters(
		model.Option{Name: "Database", Value: "/refs/shogun/shogun"},
		model.Option{Name: "Aligner tool", Value: "bowtie2"},
		model.Option{Name: "Taxonomy Level", Value: "all"},
		model.Option{Name: "Number of threads", Value: "1"},
	)

	got, err := Commands(forward, nil, samples, "/out", params)
	if err != nil {
		t.Fatalf("Commands returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d commands, want 1", len(got))
	}

	want := `shogun --input "S1_L001.fastq.gz" --output "` + filepath.Join("/out", "S1_L001") +
		`" --output-basename "SampleA" --output-format biom` +
		` --Database "/refs/shogun/shogun" --Aligner tool "bowtie2" --Taxonomy Level "all" --Number of threads "1"`
	if got[0] != want {
		t.Errorf("command =\n%q\nwant\n%q", got[0], want)
	}
}

func TestListDatabases(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"wol", "rep200", "shogun"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Plain files are not databases.
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ListDatabases(root)
	if err != nil {
		t.Fatalf("ListDatabases returned error: %v", err)
	}
	want := []string{"rep200", "shogun", "wol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListDatabases() = %v, want %v", got, want)
	}
}

func TestListDatabases_MissingRoot(t *testing.T) {
	if _, err := ListDatabases(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("ListDatabases on missing root succeeded, want error")
	}
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters("/refs/shogun")

	if v, _ := p.Get("Database"); v != filepath.Join("/refs/shogun", "shogun") {
		t.Errorf("Database = %q", v)
	}
	if v, _ := p.Get("Aligner tool"); v != "bowtie2" {
		t.Errorf("Aligner tool = %q, want bowtie2", v)
	}
	if v, _ := p.Get("Taxonomy Level"); v != "all" {
		t.Errorf("Taxonomy Level = %q, want all", v)
	}

	flags := p.Flags()
	if !strings.HasPrefix(flags, ` --Database "`) {
		t.Errorf("Flags() = %q, want Database first", flags)
	}
}
