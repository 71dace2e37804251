package slides

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// --- test helpers ---

// fakeExtractor returns fixed text and counts calls.
type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractText(pdfPath string) (string, error) {
	f.calls++
	return f.text, f.err
}

func deckConfig(t *testing.T) types.SlidesConfig {
	t.Helper()
	tmpDir := t.TempDir()

	deckPath := filepath.Join(tmpDir, "slides.pdf")
	if err := os.WriteFile(deckPath, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	return types.SlidesConfig{
		Backend:  types.BackendPdftotext,
		DeckPath: deckPath,
		TextPath: filepath.Join(tmpDir, "slides.txt"),
	}
}

// --- extraction tests ---

func TestExtractDeck(t *testing.T) {
	cfg := deckConfig(t)
	ex := &fakeExtractor{text: "Slide one.\n\nSlide two.\f3 of 120"}

	var buf strings.Builder
	text, err := ExtractDeck(ex, cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Slide one. Slide two." {
		t.Errorf("text = %q", text)
	}

	cached, err := os.ReadFile(cfg.TextPath)
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if string(cached) != text {
		t.Errorf("cache = %q, want %q", cached, text)
	}
}

func TestExtractDeckUsesCache(t *testing.T) {
	cfg := deckConfig(t)
	ex := &fakeExtractor{text: "Slide content here."}

	var buf strings.Builder
	if _, err := ExtractDeck(ex, cfg, &buf); err != nil {
		t.Fatal(err)
	}

	// Make the cache clearly newer than the PDF.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(cfg.TextPath, future, future); err != nil {
		t.Fatal(err)
	}

	text, err := ExtractDeck(ex, cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if ex.calls != 1 {
		t.Errorf("extractor ran %d times, want 1 (cache hit expected)", ex.calls)
	}
	if text != "Slide content here." {
		t.Errorf("text = %q", text)
	}
	if !strings.Contains(buf.String(), "skipped") {
		t.Errorf("output missing skip notice:\n%s", buf.String())
	}
}

func TestExtractDeckMissingPDF(t *testing.T) {
	cfg := deckConfig(t)
	cfg.DeckPath = filepath.Join(t.TempDir(), "absent.pdf")

	var buf strings.Builder
	if _, err := ExtractDeck(&fakeExtractor{text: "x"}, cfg, &buf); err == nil {
		t.Error("expected error for missing deck")
	}
}

func TestExtractDeckEmptyOutput(t *testing.T) {
	cfg := deckConfig(t)
	ex := &fakeExtractor{text: "\f\f  \n"}

	var buf strings.Builder
	if _, err := ExtractDeck(ex, cfg, &buf); err == nil {
		t.Error("expected error when extraction yields no text")
	}
}

func TestLoadDeckText(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "slides.txt")

	// Missing cache is not an error: explain runs without deck context.
	text, err := LoadDeckText(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}

	if err := os.WriteFile(path, []byte("cached text"), 0o644); err != nil {
		t.Fatal(err)
	}
	text, err = LoadDeckText(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "cached text" {
		t.Errorf("text = %q", text)
	}
}

func TestNewExtractorUnknownBackend(t *testing.T) {
	_, err := NewExtractor(types.SlidesConfig{Backend: "ghostscript"})
	if err == nil {
		t.Error("expected error for unknown backend")
	}
}

// --- cleaning tests ---

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "a  b\n\nc\td", "a b c d"},
		{"strips page footers", "Intro 3 of 120 Summary", "Intro Summary"},
		{"strips artifacts", "bullet • point � here", "bullet point here"},
		{"keeps punctuation", "S3 (Simple Storage Service): 99.999999999% durable!",
			"S3 (Simple Storage Service): 99.999999999 durable!"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// --- pdftotext backend tests ---

// fakeRunner simulates the pdftotext binary.
type fakeRunner struct {
	lookPathErr error
	output      []byte
	outputErr   error
	gotArgs     []string
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeRunner) Output(name string, args ...string) ([]byte, error) {
	f.gotArgs = append([]string{name}, args...)
	return f.output, f.outputErr
}

func TestPdftotextNotOnPath(t *testing.T) {
	_, err := newPdftotextExtractor(&fakeRunner{lookPathErr: fmt.Errorf("not found")})
	if err == nil {
		t.Error("expected error when pdftotext is missing")
	}
}

func TestPdftotextExtract(t *testing.T) {
	run := &fakeRunner{output: []byte("deck text")}
	ex, err := newPdftotextExtractor(run)
	if err != nil {
		t.Fatal(err)
	}

	text, err := ex.ExtractText("decks/slides.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if text != "deck text" {
		t.Errorf("text = %q", text)
	}

	want := []string{"pdftotext", "-layout", "decks/slides.pdf", "-"}
	if len(run.gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", run.gotArgs, want)
	}
	for i := range want {
		if run.gotArgs[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, run.gotArgs[i], want[i])
		}
	}
}

func TestPdftotextEmptyOutput(t *testing.T) {
	ex, err := newPdftotextExtractor(&fakeRunner{output: nil})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ex.ExtractText("decks/slides.pdf"); err == nil {
		t.Error("expected error for empty pdftotext output")
	}
}

// --- markitdown backend tests ---

// fakeRuntime simulates a container runtime.
type fakeRuntime struct {
	imageErr error
	output   string
	runErr   error
}

func (f *fakeRuntime) Name() string               { return "docker" }
func (f *fakeRuntime) Available() bool            { return true }
func (f *fakeRuntime) ImageExists(s string) error { return f.imageErr }

func (f *fakeRuntime) Run(image string, stdin io.Reader, stdout io.Writer) error {
	if f.runErr != nil {
		return f.runErr
	}
	io.Copy(io.Discard, stdin)
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkitdownImageMissing(t *testing.T) {
	_, err := newMarkitdownExtractor(&fakeRuntime{imageErr: fmt.Errorf("no such image")})
	if err == nil {
		t.Error("expected error when the image is absent")
	}
}

func TestMarkitdownExtract(t *testing.T) {
	cfg := deckConfig(t)
	ex, err := newMarkitdownExtractor(&fakeRuntime{output: "converted deck text"})
	if err != nil {
		t.Fatal(err)
	}

	text, err := ex.ExtractText(cfg.DeckPath)
	if err != nil {
		t.Fatal(err)
	}
	if text != "converted deck text" {
		t.Errorf("text = %q", text)
	}
}
