// Package spec holds the specification tree: named contexts ("describe"
// blocks) that nest, named examples ("it" blocks) at the leaves, and the
// four setup/teardown hook kinds scoped to each context.
//
// The tree is built by a front-end through the builder API (Describe, It,
// Pending and the hook registration methods) and is read-only afterwards:
// the runner only traverses it. Children are kept in insertion order, which
// is the order the runner visits them in.
package spec

// HookKind identifies one of the four hook lists a context owns.
type HookKind int

const (
	// BeforeAll hooks run once per context, immediately before its first
	// descendant example. Contexts without descendant examples never run them.
	BeforeAll HookKind = iota

	// BeforeEach hooks run before every descendant example, outermost
	// context first.
	BeforeEach

	// AfterAll hooks run once per context, after its last descendant example,
	// regardless of example outcomes.
	AfterAll

	// AfterEach hooks run after every descendant example, innermost context
	// first, even when the example body or an earlier after-each failed.
	AfterEach
)

// String returns the hook kind name as it appears in reports and logs.
func (k HookKind) String() string {
	switch k {
	case BeforeAll:
		return "before-all"
	case BeforeEach:
		return "before-each"
	case AfterAll:
		return "after-all"
	case AfterEach:
		return "after-each"
	default:
		return "unknown"
	}
}

// Node is either a *Context or an *Example.
type Node interface {
	// node restricts implementations to this package.
	node()
}

// Context is a named grouping node. It owns an ordered list of children
// (contexts and examples interleaved, insertion order preserved) and one
// ordered action list per hook kind.
type Context struct {
	name     string
	parent   *Context
	children []Node
	hooks    [4][]func()
}

func (*Context) node() {}

// Example is a named leaf. A nil body marks the example as pending.
type Example struct {
	name   string
	parent *Context
	body   func()
}

func (*Example) node() {}

// NewRoot creates the unnamed root container of a specification tree.
// The root itself produces no reporter events; its children are the
// top-level describe blocks.
func NewRoot() *Context {
	return &Context{}
}

// Describe adds a nested context and returns it for further building.
func (c *Context) Describe(name string) *Context {
	child := &Context{name: name, parent: c}
	c.children = append(c.children, child)
	return child
}

// It adds an example with the given body. A nil body is allowed and marks
// the example as pending, same as Pending.
func (c *Context) It(name string, body func()) {
	c.children = append(c.children, &Example{name: name, parent: c, body: body})
}

// Pending adds an example with no body. Pending examples are reported as
// such, never as passed or failed, but every hook around them still runs.
func (c *Context) Pending(name string) {
	c.It(name, nil)
}

// RegisterHook appends an action to one of the context's four hook lists.
func (c *Context) RegisterHook(kind HookKind, action func()) {
	c.hooks[kind] = append(c.hooks[kind], action)
}

// BeforeAllHook registers a before-all action.
func (c *Context) BeforeAllHook(action func()) { c.RegisterHook(BeforeAll, action) }

// BeforeEachHook registers a before-each action.
func (c *Context) BeforeEachHook(action func()) { c.RegisterHook(BeforeEach, action) }

// AfterAllHook registers an after-all action.
func (c *Context) AfterAllHook(action func()) { c.RegisterHook(AfterAll, action) }

// AfterEachHook registers an after-each action.
func (c *Context) AfterEachHook(action func()) { c.RegisterHook(AfterEach, action) }

// Name returns the context name. The root context has an empty name.
func (c *Context) Name() string { return c.name }

// Parent returns the enclosing context, or nil for the root.
func (c *Context) Parent() *Context { return c.parent }

// Children returns the child nodes in insertion order. Callers must not
// modify the returned slice.
func (c *Context) Children() []Node { return c.children }

// Hooks returns the actions registered for a hook kind, in registration
// order. Callers must not modify the returned slice.
func (c *Context) Hooks(kind HookKind) []func() { return c.hooks[kind] }

// NumExamples counts the examples in this context's subtree, pending ones
// included. Before-all and after-all only fire when this is non-zero.
func (c *Context) NumExamples() int {
	n := 0
	for _, child := range c.children {
		switch node := child.(type) {
		case *Context:
			n += node.NumExamples()
		case *Example:
			n++
		}
	}
	return n
}

// Ancestry returns the chain of contexts from the root down to c itself,
// the unnamed root included. This is the before-each order; the after-each
// order is its reverse.
func (c *Context) Ancestry() []*Context {
	var chain []*Context
	for ctx := c; ctx != nil; ctx = ctx.parent {
		chain = append(chain, ctx)
	}
	// Reverse in place: collected inner to outer, callers want outer to inner.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Name returns the example name.
func (e *Example) Name() string { return e.name }

// Parent returns the context the example belongs to.
func (e *Example) Parent() *Context { return e.parent }

// Body returns the example body, nil when pending.
func (e *Example) Body() func() { return e.body }

// IsPending reports whether the example has no body.
func (e *Example) IsPending() bool { return e.body == nil }
