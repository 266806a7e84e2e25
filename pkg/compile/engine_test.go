package compile

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/texforge/pkg/cache"
	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
)

// fakeEngine writes a shell script that behaves like pdflatex: it copies the
// source to the PDF, leaves .aux and .log files behind, and records each
// invocation in calls.
func fakeEngine(t *testing.T, body string) (binary, calls string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a shell script")
	}
	dir := t.TempDir()
	calls = filepath.Join(dir, "calls")
	script := "#!/bin/sh\n" +
		"echo \"$@\" >> '" + calls + "'\n" +
		"for a in \"$@\"; do case \"$a\" in -jobname=*) job=\"${a#-jobname=}\";; esac; done\n" +
		body
	binary = filepath.Join(dir, "fakelatex")
	if err := os.WriteFile(binary, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return binary, calls
}

const succeed = `cp "$job.tex" "$job.pdf"
echo aux > "$job.aux"
echo log > "$job.log"
`

const fail = `echo "This is fakeTeX"
echo "! Undefined control sequence."
echo log > "$job.log"
exit 1
`

func countCalls(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Count(string(data), "\n")
}

func TestCompileSuccess(t *testing.T) {
	binary, calls := fakeEngine(t, succeed)
	base := filepath.Join(t.TempDir(), "report")
	doc := latex.NewDocument(base, latex.WithBody(latex.Text("hi")))
	if err := doc.GenerateTeX(); err != nil {
		t.Fatal(err)
	}

	e := New(WithBinary(binary))
	if err := e.Compile(context.Background(), base); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	pdf, err := os.ReadFile(base + ".pdf")
	if err != nil {
		t.Fatalf("pdf missing: %v", err)
	}
	if string(pdf) != doc.Render() {
		t.Error("fake engine output should mirror the source")
	}

	data, _ := os.ReadFile(calls)
	args := string(data)
	for _, want := range []string{"-interaction=nonstopmode", "-halt-on-error", "-jobname=report", "report.tex"} {
		if !strings.Contains(args, want) {
			t.Errorf("engine args %q missing %q", args, want)
		}
	}
}

func TestCompileFailure(t *testing.T) {
	binary, _ := fakeEngine(t, fail)
	base := filepath.Join(t.TempDir(), "broken")
	if err := latex.NewDocument(base).GenerateTeX(); err != nil {
		t.Fatal(err)
	}

	err := New(WithBinary(binary)).Compile(context.Background(), base)
	if err == nil {
		t.Fatal("expected compilation error")
	}
	if !errors.Is(err, errors.ErrCodeCompilation) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeCompilation)
	}
	var cerr *errors.CompilationError
	if !stderrors.As(err, &cerr) {
		t.Fatalf("error should wrap *CompilationError: %v", err)
	}
	if cerr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", cerr.ExitCode)
	}
	if !strings.Contains(cerr.Output, "Undefined control sequence") {
		t.Errorf("Output = %q, want engine diagnostics", cerr.Output)
	}
}

func TestCompileMissingSource(t *testing.T) {
	err := New().Compile(context.Background(), filepath.Join(t.TempDir(), "nothing"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestCompileMissingBinary(t *testing.T) {
	base := filepath.Join(t.TempDir(), "doc")
	if err := latex.NewDocument(base).GenerateTeX(); err != nil {
		t.Fatal(err)
	}
	err := New(WithBinary("texforge-no-such-engine")).Compile(context.Background(), base)
	if !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeToolNotFound)
	}
}

func TestCompileUsesCache(t *testing.T) {
	binary, calls := fakeEngine(t, succeed)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(WithBinary(binary), WithCache(c))

	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	for _, base := range []string{first, second} {
		// Same content under two names hits the same cache entry.
		doc := latex.NewDocument(base, latex.WithTitle("Same"))
		if err := doc.GenerateTeX(); err != nil {
			t.Fatal(err)
		}
		if err := e.Compile(context.Background(), base); err != nil {
			t.Fatalf("Compile(%s): %v", base, err)
		}
	}

	if n := countCalls(t, calls); n != 1 {
		t.Errorf("engine ran %d times, want 1", n)
	}
	a, _ := os.ReadFile(first + ".pdf")
	b, _ := os.ReadFile(second + ".pdf")
	if string(a) != string(b) || len(a) == 0 {
		t.Error("cached PDF should match the compiled one")
	}
}

// inlinePart copies part.tex into the PDF the way \input would embed it.
const inlinePart = `cat part.tex > "$job.pdf"
`

func TestCompileCacheTracksInputs(t *testing.T) {
	binary, calls := fakeEngine(t, inlinePart)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(WithBinary(binary), WithCache(c))

	dir := t.TempDir()
	base := filepath.Join(dir, "book")
	doc := latex.NewDocument(base, latex.WithBody(latex.NewCommand("input", "part")))
	if err := doc.GenerateTeX(); err != nil {
		t.Fatal(err)
	}

	for _, version := range []string{"v1", "v2"} {
		if err := os.WriteFile(filepath.Join(dir, "part.tex"), []byte(version), 0644); err != nil {
			t.Fatal(err)
		}
		if err := e.Compile(context.Background(), base); err != nil {
			t.Fatalf("Compile with part %s: %v", version, err)
		}
		if pdf, _ := os.ReadFile(base + ".pdf"); string(pdf) != version {
			t.Errorf("pdf = %q, want %q", pdf, version)
		}
	}
	if n := countCalls(t, calls); n != 2 {
		t.Errorf("engine ran %d times, want 2", n)
	}

	// Unchanged input and arguments reuse the entry.
	if err := e.Compile(context.Background(), base); err != nil {
		t.Fatal(err)
	}
	if n := countCalls(t, calls); n != 2 {
		t.Errorf("engine ran %d times after unchanged compile, want 2", n)
	}

	draft := New(WithBinary(binary), WithCache(c), WithArgs("-draftmode"))
	if err := draft.Compile(context.Background(), base); err != nil {
		t.Fatal(err)
	}
	if n := countCalls(t, calls); n != 3 {
		t.Errorf("engine ran %d times after changing arguments, want 3", n)
	}
}

func TestInputDigests(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"chapter.tex":     `\input{sub/section}`,
		"sub/section.tex": "text",
		"refs.bib":        "@book{}",
		"logo.png":        "png",
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	src := []byte(`\include{chapter}\includegraphics[width=2cm]{logo}\bibliography{refs, absent}`)
	got := inputDigests(dir, src)

	var names []string
	for _, d := range got {
		names = append(names, d[:strings.Index(d, "=")])
	}
	want := "absent,chapter,logo,refs,sub/section"
	if strings.Join(names, ",") != want {
		t.Errorf("inputs = %v, want %s", names, want)
	}
	if got[0] != "absent=missing" {
		t.Errorf("missing input recorded as %q", got[0])
	}
}

func TestGeneratePDFWithEngine(t *testing.T) {
	binary, _ := fakeEngine(t, succeed)
	base := filepath.Join(t.TempDir(), "full")
	doc := latex.NewDocument(base, latex.WithTitle("T"))

	if err := doc.GeneratePDF(context.Background(), New(WithBinary(binary)), true); err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if _, err := os.Stat(base + ".pdf"); err != nil {
		t.Errorf("pdf missing: %v", err)
	}
	for _, ext := range latex.IntermediateExtensions {
		if _, err := os.Stat(base + ext); !os.IsNotExist(err) {
			t.Errorf("%s should be cleaned up", ext)
		}
	}
}

func TestCompileCanceled(t *testing.T) {
	binary, _ := fakeEngine(t, "sleep 5\n")
	base := filepath.Join(t.TempDir(), "slow")
	if err := latex.NewDocument(base).GenerateTeX(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(WithBinary(binary)).Compile(ctx, base)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestTail(t *testing.T) {
	in := "1\n2\n3\n4\n"
	if got := tail(in, 2); got != "3\n4" {
		t.Errorf("tail = %q, want %q", got, "3\n4")
	}
	if got := tail("only", 5); got != "only" {
		t.Errorf("tail = %q, want %q", got, "only")
	}
}

func TestName(t *testing.T) {
	if got := New(WithBinary("/usr/bin/xelatex")).Name(); got != "xelatex" {
		t.Errorf("Name() = %q, want xelatex", got)
	}
	if got := New().Name(); got != DefaultBinary {
		t.Errorf("Name() = %q, want %q", got, DefaultBinary)
	}
}
