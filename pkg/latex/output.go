package latex

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/texforge/pkg/errors"
)

// Extension of the generated source file.
const TeXExtension = ".tex"

// IntermediateExtensions are the files removed by Cleanup.
var IntermediateExtensions = []string{".aux", ".log", TeXExtension}

// Engine turns basePath+".tex" into a derived artifact, typically
// basePath+".pdf".
type Engine interface {
	Compile(ctx context.Context, basePath string) error
}

// WriteTeX writes the rendered document to basePath+".tex".
//
// The content is written to a temporary file in the same directory and
// renamed into place, so the target either holds the full document or is
// left untouched.
func (d *Document) WriteTeX(basePath string) error {
	path := basePath + TeXExtension
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(basePath)+"-*.tex")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(d.Render()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// GenerateTeX writes the document to d.Filename+".tex".
func (d *Document) GenerateTeX() error {
	return d.WriteTeX(d.Filename)
}

// GeneratePDF writes the source file and runs engine on it. When clean is
// set and the engine succeeded, the intermediate files are removed. A failed
// run keeps the source and log for inspection and returns the engine error
// unchanged.
func (d *Document) GeneratePDF(ctx context.Context, engine Engine, clean bool) error {
	if err := d.GenerateTeX(); err != nil {
		return err
	}
	if err := engine.Compile(ctx, d.Filename); err != nil {
		return err
	}
	if clean {
		Cleanup(d.Filename)
	}
	return nil
}

// Cleanup removes the intermediate files derived from basePath. Files that
// do not exist, or cannot be removed, are skipped.
func Cleanup(basePath string) {
	for _, ext := range IntermediateExtensions {
		_ = os.Remove(basePath + ext)
	}
}
