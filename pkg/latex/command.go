package latex

import (
	"fmt"
	"strings"
)

// Option is a single entry in a command's bracket group.
// An option with an empty Value renders as a bare flag.
type Option struct {
	Key   string
	Value string
}

// Flag returns a bare option such as "twocolumn".
func Flag(name string) Option {
	return Option{Key: name}
}

// KV returns a keyed option rendered as key=value.
func KV(key, value string) Option {
	return Option{Key: key, Value: value}
}

func (o Option) String() string {
	if o.Value == "" {
		return o.Key
	}
	return o.Key + "=" + o.Value
}

// Command is an atomic LaTeX construct: a name, optional bracketed options
// and positional brace-delimited arguments.
//
// Commands are treated as immutable once built; WithOptions returns a copy.
type Command struct {
	Name      string
	Arguments []string
	Options   []Option
}

// NewCommand creates a command. Arguments are converted with fmt.Sprint.
func NewCommand(name string, args ...any) *Command {
	c := &Command{Name: name}
	if len(args) > 0 {
		c.Arguments = make([]string, len(args))
		for i, a := range args {
			c.Arguments[i] = fmt.Sprint(a)
		}
	}
	return c
}

// WithOptions returns a copy of c with opts appended to its options.
func (c *Command) WithOptions(opts ...Option) *Command {
	cp := &Command{
		Name:      c.Name,
		Arguments: append([]string(nil), c.Arguments...),
		Options:   make([]Option, 0, len(c.Options)+len(opts)),
	}
	cp.Options = append(append(cp.Options, c.Options...), opts...)
	return cp
}

// Render returns the LaTeX form of the command, e.g. \foo[a=1]{bar}.
func (c *Command) Render() string {
	var b strings.Builder
	c.writeTo(&b)
	return b.String()
}

func (c *Command) writeTo(b *strings.Builder) {
	if c == nil {
		return
	}
	b.WriteByte('\\')
	b.WriteString(c.Name)
	writeOptions(b, c.Options)
	for _, arg := range c.Arguments {
		b.WriteByte('{')
		b.WriteString(arg)
		b.WriteByte('}')
	}
}

func writeOptions(b *strings.Builder, opts []Option) {
	if len(opts) == 0 {
		return
	}
	b.WriteByte('[')
	for i, o := range opts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(o.String())
	}
	b.WriteByte(']')
}
