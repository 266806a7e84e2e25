// Package latex builds LaTeX documents in memory and renders them to source.
//
// # Overview
//
// A document is a tree of [Node] values. There are exactly four kinds of node:
//
//   - [Text]: raw content, rendered verbatim
//   - [*Command]: an atomic construct such as \section{Intro}
//   - [Package]: a \usepackage declaration rendered inline
//   - [*Container]: an ordered group of nodes with its own package set
//
// [Document] is the top-level container. It adds a document class and a
// preamble, and renders the package declarations collected from the whole
// tree before the body.
//
// # Building
//
//	doc := latex.NewDocument("report", latex.WithTitle("Quarterly"))
//	doc.Append(latex.NewCommand("section", "Results"))
//	doc.Append(latex.Text("Revenue went up."))
//
//	table := latex.NewContainer()
//	table.AddPackage(latex.NewPackage("booktabs"))
//	doc.Append(table)
//
//	src := doc.Render()
//
// # Packages
//
// Each container declares the packages it needs. [Container.CollectPackages]
// walks the tree depth-first and returns each (name, option) pair once, in the
// order it was first seen, so the rendered preamble is reproducible.
//
// # Escaping
//
// Strings are emitted as given. Use [Escape] on untrusted text before adding
// it to the tree.
//
// # Output
//
// [Document.WriteTeX] writes the rendered source to disk and
// [Document.GeneratePDF] hands it to an [Engine] such as the pdflatex runner
// in the compile package.
package latex
