// Package pkg provides the core libraries for texforge.
//
// # Overview
//
// texforge builds LaTeX documents as trees of containers and commands,
// renders them to source and hands the source to a TeX engine. The pkg
// directory is organized as:
//
//  1. [latex] - Document model: commands, packages, containers, documents
//  2. [compile] - External TeX engine runs with artifact caching
//  3. [cache] - Artifact caches (null, file, Redis)
//  4. [docfile] - TOML document descriptions
//  5. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Data flow
//
//	TOML description
//	       ↓  docfile.Load
//	latex.Document
//	       ↓  Render / WriteTeX
//	name.tex
//	       ↓  compile.Engine (cached by source hash)
//	name.pdf
//
// # Example
//
//	doc := latex.NewDocument("report", latex.WithTitle("Report"))
//	doc.Append(latex.NewCommand("section", "Intro"))
//	doc.AddPackage(latex.NewPackage("amsmath"))
//	if err := doc.GeneratePDF(ctx, compile.New(), true); err != nil {
//	    return err
//	}
//
// [latex]: github.com/matzehuels/texforge/pkg/latex
// [compile]: github.com/matzehuels/texforge/pkg/compile
// [cache]: github.com/matzehuels/texforge/pkg/cache
// [docfile]: github.com/matzehuels/texforge/pkg/docfile
// [errors]: github.com/matzehuels/texforge/pkg/errors
// [observability]: github.com/matzehuels/texforge/pkg/observability
// [buildinfo]: github.com/matzehuels/texforge/pkg/buildinfo
package pkg
