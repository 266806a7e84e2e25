package latex

import "strings"

// Container is an ordered, mutable group of nodes plus the packages the
// group requires.
//
// A container owns its children. Appending a *Container to another container
// hands it over to the new parent; use Clone to place the same content in
// more than one place. Inserting one container under two parents is not an
// error, but both copies render independently and later edits show up in
// both.
type Container struct {
	children []Node
	packages packageSet
}

// NewContainer creates a container holding nodes in the given order.
func NewContainer(nodes ...Node) *Container {
	c := &Container{}
	c.Extend(nodes...)
	return c
}

// Append adds node at the end of the container.
func (c *Container) Append(node Node) {
	c.children = append(c.children, node)
}

// Extend appends nodes in order. It is equivalent to calling Append for each.
func (c *Container) Extend(nodes ...Node) {
	c.children = append(c.children, nodes...)
}

// AddPackage declares packages required by this container. Packages already
// declared on this container with the same name and option are ignored.
func (c *Container) AddPackage(pkgs ...Package) {
	for _, p := range pkgs {
		c.packages.add(p)
	}
}

// Packages returns the packages declared directly on c.
func (c *Container) Packages() []Package {
	if c == nil {
		return nil
	}
	return c.packages.list()
}

// Children returns a copy of the child list.
func (c *Container) Children() []Node {
	if c == nil {
		return nil
	}
	return append([]Node(nil), c.children...)
}

// Len returns the number of direct children.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.children)
}

// CollectPackages returns the packages required by c and every container
// nested below it. The walk is depth-first, visiting c's own packages before
// its children in child order. Each (name, option) pair appears once, at the
// position where it was first seen.
func (c *Container) CollectPackages() []Package {
	var set packageSet
	c.collect(&set)
	return set.list()
}

func (c *Container) collect(set *packageSet) {
	if c == nil {
		return
	}
	for _, p := range c.packages.order {
		set.add(p)
	}
	for _, child := range c.children {
		if sub, ok := child.(*Container); ok {
			sub.collect(set)
		}
	}
}

// Render concatenates the rendered children in insertion order.
func (c *Container) Render() string {
	var b strings.Builder
	c.writeTo(&b)
	return b.String()
}

func (c *Container) writeTo(b *strings.Builder) {
	if c == nil {
		return
	}
	for _, child := range c.children {
		renderNode(b, child)
	}
}

// Clone returns a deep copy of c. Nested containers and commands are copied;
// the result shares no mutable state with c.
func (c *Container) Clone() *Container {
	if c == nil {
		return nil
	}
	cp := &Container{
		children: make([]Node, len(c.children)),
		packages: c.packages.clone(),
	}
	for i, child := range c.children {
		cp.children[i] = cloneNode(child)
	}
	return cp
}

func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *Container:
		return v.Clone()
	case *Command:
		if v == nil {
			return v
		}
		return v.WithOptions()
	default:
		return n
	}
}
