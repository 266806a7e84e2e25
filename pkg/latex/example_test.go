package latex_test

import (
	"fmt"

	"github.com/matzehuels/texforge/pkg/latex"
)

func ExampleCommand_Render() {
	cmd := latex.NewCommand("foo", "bar").WithOptions(latex.KV("a", "1"))
	fmt.Println(cmd.Render())
	// Output:
	// \foo[a=1]{bar}
}

func ExampleContainer_CollectPackages() {
	plots := latex.NewContainer()
	plots.AddPackage(latex.NewPackage("pgfplots"), latex.NewPackage("tikz"))

	diagram := latex.NewContainer()
	diagram.AddPackage(latex.NewPackage("tikz"))

	body := latex.NewContainer(plots, diagram)
	for _, p := range body.CollectPackages() {
		fmt.Println(p.Render())
	}
	// Output:
	// \usepackage{pgfplots}
	// \usepackage{tikz}
}

func ExampleDocument_Render() {
	doc := latex.NewDocument("hello",
		latex.WithTitle("Hello"),
		latex.WithAuthor("Ada"),
	)
	doc.Append(latex.NewCommand("maketitle"))
	doc.Append(latex.Text("\n"))
	doc.Append(latex.Text(latex.Escape("100% done")))

	fmt.Print(doc.Render())
	// Output:
	// \documentclass{article}
	// \usepackage[T1]{fontenc}
	// \usepackage[utf8]{inputenc}
	// \usepackage{lmodern}
	// \title{Hello}
	// \author{Ada}
	// \begin{document}
	// \maketitle
	// 100\% done
	// \end{document}
}
