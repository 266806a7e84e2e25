package latex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	texerrors "github.com/matzehuels/texforge/pkg/errors"
)

type fakeEngine struct {
	calls  []string
	err    error
	source string
}

func (f *fakeEngine) Compile(_ context.Context, basePath string) error {
	f.calls = append(f.calls, basePath)
	data, _ := os.ReadFile(basePath + TeXExtension)
	f.source = string(data)
	// Simulate the engine leaving intermediates behind.
	_ = os.WriteFile(basePath+".aux", nil, 0644)
	_ = os.WriteFile(basePath+".log", nil, 0644)
	if f.err == nil {
		_ = os.WriteFile(basePath+".pdf", []byte("%PDF"), 0644)
	}
	return f.err
}

func TestWriteTeX(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "report")
	doc := NewDocument(base, WithBody(Text("hello")))

	if err := doc.WriteTeX(base); err != nil {
		t.Fatalf("WriteTeX: %v", err)
	}

	data, err := os.ReadFile(base + ".tex")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != doc.Render() {
		t.Errorf("file content = %q, want %q", data, doc.Render())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only report.tex in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteTeXUnwritable(t *testing.T) {
	base := filepath.Join(t.TempDir(), "missing", "report")
	err := NewDocument(base).GenerateTeX()
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !texerrors.Is(err, texerrors.ErrCodeIO) {
		t.Errorf("error code = %v, want %v", texerrors.GetCode(err), texerrors.ErrCodeIO)
	}
}

func TestGeneratePDFClean(t *testing.T) {
	base := filepath.Join(t.TempDir(), "doc")
	doc := NewDocument(base, WithBody(Text("body")))
	engine := &fakeEngine{}

	if err := doc.GeneratePDF(context.Background(), engine, true); err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if len(engine.calls) != 1 || engine.calls[0] != base {
		t.Errorf("engine calls = %v, want [%s]", engine.calls, base)
	}
	if engine.source != doc.Render() {
		t.Error("engine should see the rendered source")
	}
	for _, ext := range IntermediateExtensions {
		if _, err := os.Stat(base + ext); !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", ext)
		}
	}
	if _, err := os.Stat(base + ".pdf"); err != nil {
		t.Errorf("pdf should remain: %v", err)
	}
}

func TestGeneratePDFNoClean(t *testing.T) {
	base := filepath.Join(t.TempDir(), "doc")
	if err := NewDocument(base).GeneratePDF(context.Background(), &fakeEngine{}, false); err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	for _, ext := range IntermediateExtensions {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("%s should be kept: %v", ext, err)
		}
	}
}

func TestGeneratePDFEngineFailure(t *testing.T) {
	base := filepath.Join(t.TempDir(), "doc")
	want := errors.New("engine failed")

	err := NewDocument(base).GeneratePDF(context.Background(), &fakeEngine{err: want}, true)
	if !errors.Is(err, want) {
		t.Fatalf("GeneratePDF error = %v, want %v", err, want)
	}
	for _, ext := range []string{TeXExtension, ".log"} {
		if _, statErr := os.Stat(base + ext); statErr != nil {
			t.Errorf("%s should survive a failed compile: %v", ext, statErr)
		}
	}
}

func TestCleanupMissingFiles(t *testing.T) {
	// Nothing was generated; Cleanup must not panic or fail.
	Cleanup(filepath.Join(t.TempDir(), "never-created"))
}
