// Package compile runs an external TeX engine over generated source files.
//
// [Engine] implements latex.Engine. It shells out to pdflatex (or any
// compatible binary such as xelatex or lualatex) in the directory of the
// source file, and optionally keeps the resulting PDF in a [cache.Cache].
// The key covers the source, the engine arguments and every file pulled in
// through \input, \include, \includegraphics or a bibliography command.
// Files reached any other way, such as packages and fonts, are not tracked.
//
//	engine := compile.New(compile.WithCache(c), compile.WithLogger(logger))
//	err := doc.GeneratePDF(ctx, engine, true)
//
// A failed run is reported as an errors.ErrCodeCompilation error wrapping
// an *errors.CompilationError with the tail of the engine output. The engine
// is run once; there are no retries. The engine has no timeout of its own:
// cancel ctx to stop it.
//
// Requires a TeX distribution: brew install --cask mactex-no-gui (macOS),
// apt install texlive-latex-base (Linux).
//
// [cache.Cache]: github.com/matzehuels/texforge/pkg/cache.Cache
package compile
