package interp

import (
	"tally/internal/diag"
	"tally/internal/source"
)

// Context is one named execution frame. Frames form a singly linked chain
// to the root program frame and exist only to build tracebacks.
// Parent is a non-owning back reference; a frame is never modified after creation.
type Context struct {
	DisplayName string
	Parent      *Context
	EntrySpan   source.Span // where the frame was entered inside Parent
	depth       int
}

// NewRootContext creates the frame of the top-level program.
func NewRootContext(name string) *Context {
	return &Context{DisplayName: name}
}

// Child creates a nested frame entered at entry.
func (c *Context) Child(name string, entry source.Span) *Context {
	return &Context{
		DisplayName: name,
		Parent:      c,
		EntrySpan:   entry,
		depth:       c.depth + 1,
	}
}

// Depth is 0 for the root frame.
func (c *Context) Depth() int { return c.depth }

// Root walks up to the program frame.
func (c *Context) Root() *Context {
	for c.Parent != nil {
		c = c.Parent
	}
	return c
}

// Traceback lists frames root first. The innermost frame points at errSpan,
// every outer frame at the place where its child was entered.
func (c *Context) Traceback(errSpan source.Span) []diag.Frame {
	frames := make([]diag.Frame, c.depth+1)
	span := errSpan
	for i, cur := c.depth, c; cur != nil && i >= 0; i, cur = i-1, cur.Parent {
		frames[i] = diag.Frame{Name: cur.DisplayName, Span: span}
		span = cur.EntrySpan
	}
	return frames
}
