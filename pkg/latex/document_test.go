package latex

import (
	"strings"
	"testing"
)

func TestDocumentSkeleton(t *testing.T) {
	doc := NewDocument("out", WithTitle("T"), WithBody(Text("X")))

	want := strings.Join([]string{
		`\documentclass{article}`,
		`\usepackage[T1]{fontenc}`,
		`\usepackage[utf8]{inputenc}`,
		`\usepackage{lmodern}`,
		`\title{T}`,
		`\begin{document}`,
		`X`,
		`\end{document}`,
	}, "\n") + "\n"

	if got := doc.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestDocumentDefaults(t *testing.T) {
	doc := NewDocument("")
	if doc.Filename != DefaultFilename {
		t.Errorf("Filename = %q, want %q", doc.Filename, DefaultFilename)
	}
	if got := doc.DocumentClass.Render(); got != `\documentclass{article}` {
		t.Errorf("DocumentClass = %q", got)
	}
	if len(doc.Preamble) != 0 {
		t.Errorf("Preamble = %v, want empty", doc.Preamble)
	}
	if got := len(doc.Packages()); got != 3 {
		t.Errorf("default packages = %d, want 3", got)
	}
}

func TestDocumentPreambleOrder(t *testing.T) {
	// Options are given in reverse; the preamble order is fixed.
	doc := NewDocument("out", WithDate("2024"), WithAuthor("A"), WithTitle("T"))

	var got []string
	for _, c := range doc.Preamble {
		got = append(got, c.Render())
	}
	want := []string{`\title{T}`, `\author{A}`, `\date{2024}`}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Preamble = %v, want %v", got, want)
	}

	doc.AppendPreamble(NewCommand("newcommand", `\R`, `\mathbb{R}`))
	if last := doc.Preamble[len(doc.Preamble)-1].Render(); last != `\newcommand{\R}{\mathbb{R}}` {
		t.Errorf("appended preamble = %q", last)
	}
}

func TestDocumentEmptyStringsStillDeclared(t *testing.T) {
	doc := NewDocument("out", WithDate(""))
	if len(doc.Preamble) != 1 || doc.Preamble[0].Render() != `\date{}` {
		t.Errorf("Preamble = %v, want a single empty \\date", doc.Preamble)
	}
}

func TestDocumentClassAndEncodings(t *testing.T) {
	doc := NewDocument("out",
		WithDocumentClassCommand(NewCommand("documentclass", "report").WithOptions(Flag("12pt"))),
		WithFontEncoding("OT1"),
		WithInputEncoding("latin1"),
	)
	out := doc.Render()

	for _, want := range []string{
		`\documentclass[12pt]{report}` + "\n",
		`\usepackage[OT1]{fontenc}` + "\n",
		`\usepackage[latin1]{inputenc}` + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	byName := NewDocument("out", WithDocumentClass("beamer"))
	if !strings.HasPrefix(byName.Render(), `\documentclass{beamer}`+"\n") {
		t.Errorf("WithDocumentClass not applied:\n%s", byName.Render())
	}
}

func TestDocumentCollectsNestedPackages(t *testing.T) {
	doc := NewDocument("out")
	fig := NewContainer(NewCommand("includegraphics", "a.png"))
	fig.AddPackage(NewPackage("graphicx"))
	table := NewContainer(NewCommand("toprule"))
	table.AddPackage(NewPackage("booktabs"), NewPackage("graphicx"))
	doc.Extend(fig, table)

	// A default package redeclared in the body is not repeated.
	dup := NewContainer()
	dup.AddPackage(NewPackage("inputenc", WithOption("utf8")))
	doc.Append(dup)

	out := doc.Render()
	header := out[:strings.Index(out, `\begin{document}`)]
	wantHeader := `\documentclass{article}` + "\n" +
		`\usepackage[T1]{fontenc}` + "\n" +
		`\usepackage[utf8]{inputenc}` + "\n" +
		`\usepackage{lmodern}` + "\n" +
		`\usepackage{graphicx}` + "\n" +
		`\usepackage{booktabs}` + "\n"
	if header != wantHeader {
		t.Errorf("header =\n%s\nwant\n%s", header, wantHeader)
	}
}

func TestDocumentRenderIdempotent(t *testing.T) {
	doc := NewDocument("out", WithTitle("T"), WithAuthor("A"))
	sec := NewContainer(NewCommand("section", "S"), Text("text"))
	sec.AddPackage(NewPackage("amsmath"))
	doc.Append(sec)

	first := doc.Render()
	second := doc.Render()
	if first != second {
		t.Errorf("Render not idempotent:\n%s\n---\n%s", first, second)
	}
	if got := len(doc.Packages()); got != 3 {
		t.Errorf("Render should not change declared packages, got %d", got)
	}
}

func TestZeroDocumentRenders(t *testing.T) {
	var doc Document
	want := `\begin{document}` + "\n\n" + `\end{document}` + "\n"
	if got := doc.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50% & more", `50\% \& more`},
		{"a_b#c$d", `a\_b\#c\$d`},
		{"{x}", `\{x\}`},
		{`C:\dir`, `C:\textbackslash{}dir`},
		{"~^", `\textasciitilde{}\^{}`},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocumentSkipsNilPreambleCommand(t *testing.T) {
	doc := NewDocument("x", WithTitle("T"))
	doc.AppendPreamble(nil, NewCommand("frenchspacing"))

	want := "\\title{T}\n\\frenchspacing\n\\begin{document}"
	if got := doc.Render(); !strings.Contains(got, want) {
		t.Errorf("Render() = %q, want it to contain %q", got, want)
	}
}
