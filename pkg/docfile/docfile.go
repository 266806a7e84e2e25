// Package docfile builds LaTeX documents from TOML descriptions.
//
// A description mirrors the latex package's tree:
//
//	filename      = "report"
//	documentclass = "article"
//	class_options = ["12pt", "a4paper"]
//	title         = "Quarterly report"
//	author        = "Finance"
//
//	[[packages]]
//	name   = "geometry"
//	option = "margin=1in"
//
//	[[body]]
//	command = "maketitle"
//
//	[[body]]
//	command = "section"
//	args    = ["Results"]
//
//	[[body]]
//	text = "Revenue went up.\n"
//
//	[[body]]
//	[body.group]
//	packages = [{ name = "booktabs" }]
//	body     = [{ command = "toprule" }]
//
// Each body item sets exactly one of text, command, package or group. Keys
// the decoder does not recognise are rejected so typos surface early.
//
// Text and arguments are copied verbatim. Setting escape = true on a text or
// command item passes them through latex.Escape first, for content that is
// prose rather than markup:
//
//	[[body]]
//	text   = "Costs rose 5% & margins fell"
//	escape = true
package docfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/texforge/pkg/errors"
	"github.com/matzehuels/texforge/pkg/latex"
)

// File is the decoded form of a document description.
type File struct {
	Filename      string   `toml:"filename"`
	DocumentClass string   `toml:"documentclass"`
	ClassOptions  []string `toml:"class_options"`
	FontEncoding  string   `toml:"fontenc"`
	InputEncoding string   `toml:"inputenc"`
	Title         *string  `toml:"title"`
	Author        *string  `toml:"author"`
	Date          *string  `toml:"date"`

	Packages []PackageSpec `toml:"packages"`
	Preamble []Item        `toml:"preamble"`
	Body     []Item        `toml:"body"`
}

// PackageSpec declares a package on the document or a group.
type PackageSpec struct {
	Name    string `toml:"name"`
	Option  string `toml:"option"`
	Version string `toml:"version"`
}

// Item is one body or preamble entry.
type Item struct {
	Text *string `toml:"text"`

	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Options []string `toml:"options"` // "key=value" or bare flags

	Package string `toml:"package"`
	Option  string `toml:"option"`
	Version string `toml:"version"`

	Group *Group `toml:"group"`

	Escape bool `toml:"escape"` // escape text or args with latex.Escape
}

// Group is a nested container.
type Group struct {
	Packages []PackageSpec `toml:"packages"`
	Body     []Item        `toml:"body"`
}

// Load reads and converts the description at path. A relative filename is
// resolved against the directory of path; without a filename the output is
// placed next to path with its extension stripped.
func Load(path string) (*latex.Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}

	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	switch {
	case f.Filename == "":
		f.Filename = strings.TrimSuffix(path, filepath.Ext(path))
	case !filepath.IsAbs(f.Filename):
		f.Filename = filepath.Join(filepath.Dir(path), f.Filename)
	}
	return f.Document()
}

// Parse decodes data and converts it to a document.
func Parse(data []byte) (*latex.Document, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return f.Document()
}

// Decode parses TOML into a File without building the document.
func Decode(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse document description")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// Document converts f into a latex.Document.
func (f *File) Document() (*latex.Document, error) {
	var opts []latex.DocumentOption

	if f.DocumentClass != "" || len(f.ClassOptions) > 0 {
		class := f.DocumentClass
		if class == "" {
			class = latex.DefaultDocumentClass
		}
		cmd := latex.NewCommand("documentclass", class).WithOptions(parseOptions(f.ClassOptions)...)
		opts = append(opts, latex.WithDocumentClassCommand(cmd))
	}
	if f.FontEncoding != "" {
		opts = append(opts, latex.WithFontEncoding(f.FontEncoding))
	}
	if f.InputEncoding != "" {
		opts = append(opts, latex.WithInputEncoding(f.InputEncoding))
	}
	if f.Title != nil {
		opts = append(opts, latex.WithTitle(*f.Title))
	}
	if f.Author != nil {
		opts = append(opts, latex.WithAuthor(*f.Author))
	}
	if f.Date != nil {
		opts = append(opts, latex.WithDate(*f.Date))
	}

	doc := latex.NewDocument(f.Filename, opts...)

	pkgs, err := buildPackages("packages", f.Packages)
	if err != nil {
		return nil, err
	}
	doc.AddPackage(pkgs...)

	for i, item := range f.Preamble {
		path := fmt.Sprintf("preamble[%d]", i)
		if item.Command == "" || item.Text != nil || item.Package != "" || item.Group != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: preamble entries must be commands", path)
		}
		cmd, err := buildCommand(path, item)
		if err != nil {
			return nil, err
		}
		doc.AppendPreamble(cmd)
	}

	nodes, err := buildItems("body", f.Body)
	if err != nil {
		return nil, err
	}
	doc.Extend(nodes...)
	return doc, nil
}

func buildItems(prefix string, items []Item) ([]latex.Node, error) {
	nodes := make([]latex.Node, 0, len(items))
	for i, item := range items {
		n, err := buildItem(fmt.Sprintf("%s[%d]", prefix, i), item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func buildItem(path string, item Item) (latex.Node, error) {
	kinds := 0
	if item.Text != nil {
		kinds++
	}
	if item.Command != "" {
		kinds++
	}
	if item.Package != "" {
		kinds++
	}
	if item.Group != nil {
		kinds++
	}
	if kinds != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%s: exactly one of text, command, package or group must be set", path)
	}

	if item.Escape && item.Text == nil && item.Command == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: escape applies to text and command items only", path)
	}

	switch {
	case item.Text != nil:
		if item.Escape {
			return latex.Text(latex.Escape(*item.Text)), nil
		}
		return latex.Text(*item.Text), nil
	case item.Command != "":
		return buildCommand(path, item)
	case item.Package != "":
		if err := errors.ValidatePackageName(item.Package); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
		}
		return latex.NewPackage(item.Package, latex.WithOption(item.Option), latex.WithVersion(item.Version)), nil
	default:
		group := latex.NewContainer()
		pkgs, err := buildPackages(path+".group.packages", item.Group.Packages)
		if err != nil {
			return nil, err
		}
		group.AddPackage(pkgs...)
		children, err := buildItems(path+".group.body", item.Group.Body)
		if err != nil {
			return nil, err
		}
		group.Extend(children...)
		return group, nil
	}
}

func buildCommand(path string, item Item) (*latex.Command, error) {
	if err := errors.ValidateCommandName(item.Command); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	args := make([]any, len(item.Args))
	for i, a := range item.Args {
		if item.Escape {
			a = latex.Escape(a)
		}
		args[i] = a
	}
	return latex.NewCommand(item.Command, args...).WithOptions(parseOptions(item.Options)...), nil
}

func buildPackages(path string, specs []PackageSpec) ([]latex.Package, error) {
	pkgs := make([]latex.Package, 0, len(specs))
	for i, s := range specs {
		if err := errors.ValidatePackageName(s.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s[%d]", path, i)
		}
		pkgs = append(pkgs, latex.NewPackage(s.Name, latex.WithOption(s.Option), latex.WithVersion(s.Version)))
	}
	return pkgs, nil
}

// parseOptions turns "key=value" entries into keyed options and anything
// else into flags.
func parseOptions(raw []string) []latex.Option {
	opts := make([]latex.Option, 0, len(raw))
	for _, r := range raw {
		if k, v, ok := strings.Cut(r, "="); ok {
			opts = append(opts, latex.KV(strings.TrimSpace(k), strings.TrimSpace(v)))
			continue
		}
		opts = append(opts, latex.Flag(strings.TrimSpace(r)))
	}
	return opts
}
