package latex

import "strings"

// Node is one element of a document tree.
//
// The set of implementations is closed: [Text], [*Command], [Package] and
// [*Container].
type Node interface {
	node()
}

// Text is raw LaTeX content. It is rendered verbatim.
type Text string

func (Text) node()       {}
func (*Command) node()   {}
func (Package) node()    {}
func (*Container) node() {}

// renderNode writes the LaTeX form of n to b.
func renderNode(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		b.WriteString(string(v))
	case *Command:
		v.writeTo(b)
	case Package:
		v.writeTo(b)
	case *Container:
		v.writeTo(b)
	case nil:
	default:
		panic("latex: unknown node type")
	}
}
