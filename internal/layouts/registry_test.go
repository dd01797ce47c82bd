package layouts

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNormalize(t *testing.T) {
	r := NewRegistry(Classic, zap.NewNop())

	tests := []struct {
		input string
		want  Layout
	}{
		{"classic", Classic},
		{"compact", Compact},
		{"", Classic},        // nothing stored, use default
		{"modern", Compact},  // unknown corrects to compact
		{"CLASSIC", Compact}, // case sensitive, corrects too
	}
	for _, tt := range tests {
		if got := r.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuiltinDefinitions(t *testing.T) {
	r := NewRegistry(Classic, zap.NewNop())

	classic := r.Get("classic")
	if classic == nil || len(classic.Regions) != 1 {
		t.Fatalf("classic should have a single region: %+v", classic)
	}
	wantOrder := []Block{
		BlockIdentity, BlockSummary, BlockContact,
		BlockExperience, BlockSkills, BlockLanguages, BlockEducation,
	}
	for i, b := range classic.Regions[0].Blocks {
		if b != wantOrder[i] {
			t.Errorf("classic block %d = %q, want %q", i, b, wantOrder[i])
		}
	}

	compact := r.Get("compact")
	if len(compact.Regions) != 2 {
		t.Fatalf("compact should have two regions: %+v", compact.Regions)
	}
	if compact.Regions[0].Name != "main" || compact.Regions[1].Name != "side" {
		t.Errorf("compact regions = %q/%q", compact.Regions[0].Name, compact.Regions[1].Name)
	}
	if compact.Heading(BlockExperience) != "Work Experience" {
		t.Errorf("compact experience heading = %q", compact.Heading(BlockExperience))
	}
	if compact.EmptyText(BlockSkills) != "No skills added." {
		t.Errorf("empty text = %q", compact.EmptyText(BlockSkills))
	}

	// Garbage requests resolve to the compact definition.
	if got := r.Get("garbage"); got.Name != "compact" {
		t.Errorf("Get(garbage) = %q", got.Name)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	override := `
name: compact
headings:
  experience: Career History
empty:
  skills: Nothing listed yet.
`
	if err := os.WriteFile(filepath.Join(dir, "compact.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(Classic, zap.NewNop())
	if err := r.LoadFromDir(dir); err != nil {
		t.Fatalf("LoadFromDir: %v", err)
	}

	compact := r.Get("compact")
	if compact.Heading(BlockExperience) != "Career History" {
		t.Errorf("override heading = %q", compact.Heading(BlockExperience))
	}
	if compact.EmptyText(BlockSkills) != "Nothing listed yet." {
		t.Errorf("override empty text = %q", compact.EmptyText(BlockSkills))
	}
	// Untouched fields keep built-in values.
	if compact.Heading(BlockContact) != "Personal Info" {
		t.Errorf("contact heading lost: %q", compact.Heading(BlockContact))
	}
	if len(compact.Regions) != 2 {
		t.Errorf("regions lost: %+v", compact.Regions)
	}

	// Missing dir is fine.
	if err := r.LoadFromDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("missing dir should not error: %v", err)
	}
}

func TestLoadFromFileRejectsUnknownBlock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := `
name: widescreen
regions:
  - name: main
    blocks: [identity, sidebar]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(Classic, zap.NewNop())
	if err := r.LoadFromFile(path); err == nil {
		t.Error("expected error for unknown block")
	}
}
