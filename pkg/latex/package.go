package latex

import "strings"

// Package declares a LaTeX package the document depends on.
//
// Packages are values. Two packages with the same Name and Option are the
// same declaration; Version is carried along but does not affect identity.
type Package struct {
	Name    string
	Option  string
	Version string
}

// PackageKey identifies a package for deduplication.
type PackageKey struct {
	Name   string
	Option string
}

// PackageOption configures a Package.
type PackageOption func(*Package)

// WithOption sets the package option, e.g. "T1" for fontenc.
func WithOption(option string) PackageOption {
	return func(p *Package) { p.Option = option }
}

// WithVersion sets the minimum release date or version constraint,
// rendered after the package name.
func WithVersion(version string) PackageOption {
	return func(p *Package) { p.Version = version }
}

// NewPackage creates a package declaration.
func NewPackage(name string, opts ...PackageOption) Package {
	p := Package{Name: name}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Key returns the deduplication key of p.
func (p Package) Key() PackageKey {
	return PackageKey{Name: p.Name, Option: p.Option}
}

// Render returns the \usepackage statement for p.
func (p Package) Render() string {
	var b strings.Builder
	p.writeTo(&b)
	return b.String()
}

func (p Package) writeTo(b *strings.Builder) {
	b.WriteString(`\usepackage`)
	if p.Option != "" {
		b.WriteByte('[')
		b.WriteString(p.Option)
		b.WriteByte(']')
	}
	b.WriteByte('{')
	b.WriteString(p.Name)
	b.WriteByte('}')
	if p.Version != "" {
		b.WriteByte('[')
		b.WriteString(p.Version)
		b.WriteByte(']')
	}
}

// packageSet is an insertion-ordered set of packages keyed by PackageKey.
type packageSet struct {
	order []Package
	seen  map[PackageKey]struct{}
}

// add inserts p unless a package with the same key is already present.
// It reports whether p was added.
func (s *packageSet) add(p Package) bool {
	k := p.Key()
	if _, ok := s.seen[k]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[PackageKey]struct{})
	}
	s.seen[k] = struct{}{}
	s.order = append(s.order, p)
	return true
}

func (s *packageSet) list() []Package {
	return append([]Package(nil), s.order...)
}

func (s *packageSet) clone() packageSet {
	cp := packageSet{order: append([]Package(nil), s.order...)}
	if len(s.seen) > 0 {
		cp.seen = make(map[PackageKey]struct{}, len(s.seen))
		for k := range s.seen {
			cp.seen[k] = struct{}{}
		}
	}
	return cp
}
