package latex

import "strings"

// Defaults applied by NewDocument.
const (
	DefaultFilename      = "default_filename"
	DefaultDocumentClass = "article"
	DefaultFontEncoding  = "T1"
	DefaultInputEncoding = "utf8"
)

const (
	beginDocument = `\begin{document}`
	endDocument   = `\end{document}`
)

// Document is a complete LaTeX document: a document class, the packages
// collected from the tree, a preamble and a body.
type Document struct {
	Container

	// Filename is the base path, without extension, used by GenerateTeX
	// and GeneratePDF.
	Filename string

	DocumentClass *Command
	Preamble      []*Command
}

// DocumentOption configures a Document at construction time.
type DocumentOption func(*documentConfig)

type documentConfig struct {
	class    *Command
	fontenc  string
	inputenc string
	title    *string
	author   *string
	date     *string
	body     []Node
}

// WithDocumentClass sets the document class by name, e.g. "report".
func WithDocumentClass(name string) DocumentOption {
	return func(c *documentConfig) { c.class = NewCommand("documentclass", name) }
}

// WithDocumentClassCommand sets the document class command verbatim, which
// allows class options such as \documentclass[12pt]{article}.
func WithDocumentClassCommand(cmd *Command) DocumentOption {
	return func(c *documentConfig) { c.class = cmd }
}

// WithFontEncoding sets the option passed to the fontenc package.
func WithFontEncoding(enc string) DocumentOption {
	return func(c *documentConfig) { c.fontenc = enc }
}

// WithInputEncoding sets the option passed to the inputenc package.
func WithInputEncoding(enc string) DocumentOption {
	return func(c *documentConfig) { c.inputenc = enc }
}

// WithTitle adds \title to the preamble.
func WithTitle(title string) DocumentOption {
	return func(c *documentConfig) { c.title = &title }
}

// WithAuthor adds \author to the preamble.
func WithAuthor(author string) DocumentOption {
	return func(c *documentConfig) { c.author = &author }
}

// WithDate adds \date to the preamble.
func WithDate(date string) DocumentOption {
	return func(c *documentConfig) { c.date = &date }
}

// WithBody sets the initial body content.
func WithBody(nodes ...Node) DocumentOption {
	return func(c *documentConfig) { c.body = append(c.body, nodes...) }
}

// NewDocument creates a document written to filename (without extension).
// An empty filename falls back to DefaultFilename.
//
// fontenc, inputenc and lmodern are always declared. Title, author and date
// go into the preamble in that order, each only when supplied.
func NewDocument(filename string, opts ...DocumentOption) *Document {
	cfg := documentConfig{
		fontenc:  DefaultFontEncoding,
		inputenc: DefaultInputEncoding,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if filename == "" {
		filename = DefaultFilename
	}
	if cfg.class == nil {
		cfg.class = NewCommand("documentclass", DefaultDocumentClass)
	}

	d := &Document{
		Filename:      filename,
		DocumentClass: cfg.class,
	}
	d.AddPackage(
		NewPackage("fontenc", WithOption(cfg.fontenc)),
		NewPackage("inputenc", WithOption(cfg.inputenc)),
		NewPackage("lmodern"),
	)
	if cfg.title != nil {
		d.Preamble = append(d.Preamble, NewCommand("title", *cfg.title))
	}
	if cfg.author != nil {
		d.Preamble = append(d.Preamble, NewCommand("author", *cfg.author))
	}
	if cfg.date != nil {
		d.Preamble = append(d.Preamble, NewCommand("date", *cfg.date))
	}
	d.Extend(cfg.body...)
	return d
}

// AppendPreamble adds commands to the end of the preamble.
func (d *Document) AppendPreamble(cmds ...*Command) {
	d.Preamble = append(d.Preamble, cmds...)
}

// Render returns the full LaTeX source: document class, packages, preamble,
// \begin{document}, body and \end{document}, each on its own line.
// Render does not modify d.
func (d *Document) Render() string {
	var b strings.Builder

	if d.DocumentClass != nil {
		d.DocumentClass.writeTo(&b)
		b.WriteByte('\n')
	}

	for _, p := range d.CollectPackages() {
		p.writeTo(&b)
		b.WriteByte('\n')
	}
	for _, cmd := range d.Preamble {
		if cmd == nil {
			continue
		}
		cmd.writeTo(&b)
		b.WriteByte('\n')
	}

	b.WriteString(beginDocument)
	b.WriteByte('\n')
	d.Container.writeTo(&b)
	b.WriteByte('\n')
	b.WriteString(endDocument)
	b.WriteByte('\n')

	return b.String()
}
