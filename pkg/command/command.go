package command

// Command is a reversible unit of work.
//
// Apply performs the forward mutation. Revert restores the exact state that
// existed before the matching Apply. Revert is called at most once per Apply,
// and Apply is never called twice without a Revert in between.
type Command interface {
	// Label is a short human-readable description, e.g. "Merge Elements".
	Label() string
	Apply()
	Revert()
}

// Func adapts a pair of functions to the Command interface.
type Func struct {
	Name    string
	ApplyFn func()
	UndoFn  func()
}

func (f *Func) Label() string { return f.Name }

func (f *Func) Apply() {
	if f.ApplyFn != nil {
		f.ApplyFn()
	}
}

func (f *Func) Revert() {
	if f.UndoFn != nil {
		f.UndoFn()
	}
}

// Compound is an ordered batch of commands that applies and reverts as one.
// Children apply in insertion order and revert in reverse order.
//
// The zero value is an empty, unlabelled batch ready to use.
type Compound struct {
	label string
	cmds  []Command
}

// NewCompound returns an empty batch with the given label.
func NewCompound(label string) *Compound {
	return &Compound{label: label}
}

// Add appends cmd to the batch. Nil commands are ignored.
func (c *Compound) Add(cmd Command) {
	if cmd == nil {
		return
	}
	c.cmds = append(c.cmds, cmd)
}

// Label returns the batch label, or the label of its only child if the batch
// was created without one.
func (c *Compound) Label() string {
	if c.label == "" && len(c.cmds) == 1 {
		return c.cmds[0].Label()
	}
	return c.label
}

// Len returns the number of direct children.
func (c *Compound) Len() int { return len(c.cmds) }

// IsEmpty reports whether the batch has no children.
func (c *Compound) IsEmpty() bool { return len(c.cmds) == 0 }

// Commands returns the direct children in apply order.
// The returned slice must not be modified.
func (c *Compound) Commands() []Command { return c.cmds }

// Apply applies every child in order.
func (c *Compound) Apply() {
	for _, cmd := range c.cmds {
		cmd.Apply()
	}
}

// Revert reverts every child in reverse order.
func (c *Compound) Revert() {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		c.cmds[i].Revert()
	}
}

var (
	_ Command = (*Func)(nil)
	_ Command = (*Compound)(nil)
)
