package merge

import (
	"github.com/matzehuels/elementmerge/pkg/command"
	errs "github.com/matzehuels/elementmerge/pkg/errors"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// Label is the display label of a transaction and of a batch of them.
const Label = "Merge Elements"

// Transaction folds one source element into a target element.
//
// All operations are built from the model state at construction time and
// applied later in this order: outgoing relationships, incoming
// relationships, placements, documentation and properties, deletion of the
// source. Revert runs them in reverse.
type Transaction struct {
	Target model.ID
	Source model.ID

	// Counts of what the transaction touches, known at construction.
	Relationships int
	Rebound       int
	Migrated      int

	ops *command.Compound
}

// NewTransaction builds the transaction merging source into target.
// It fails only if either ID does not name an element or both are the same.
func NewTransaction(m *model.Model, target, source model.ID, mergeProperties bool) (*Transaction, error) {
	return newTransaction(m, target, source, mergeProperties, newPlan(target))
}

func newTransaction(m *model.Model, target, source model.ID, mergeProperties bool, pl *plan) (*Transaction, error) {
	te, ok := m.Element(target)
	if !ok {
		return nil, errs.New(errs.ErrCodeElementNotFound, "target element %s not found", target)
	}
	se, ok := m.Element(source)
	if !ok {
		return nil, errs.New(errs.ErrCodeElementNotFound, "source element %s not found", source)
	}
	if target == source {
		return nil, errs.New(errs.ErrCodeInvalidSelection, "cannot merge element %s into itself", source)
	}

	t := &Transaction{Target: target, Source: source, ops: command.NewCompound(Label)}

	// The derived views return fresh slices, so these are snapshots.
	for _, r := range m.SourceRelationships(source) {
		t.ops.Add(newReconnectRelationship(r, target, true))
		t.Relationships++
	}
	for _, r := range m.TargetRelationships(source) {
		t.ops.Add(newReconnectRelationship(r, target, false))
		t.Relationships++
	}
	for _, p := range m.ReferencingPlacements(source) {
		op := newSetElement(m, p, target, pl)
		if op.Migrates() {
			t.Migrated++
		} else {
			t.Rebound++
		}
		t.ops.Add(op)
	}
	if mergeProperties {
		t.ops.Add(newMergeProperties(te, se))
	}
	t.ops.Add(model.DeleteElement(m, source))
	return t, nil
}

func (t *Transaction) Label() string { return Label }

func (t *Transaction) Apply() { t.ops.Apply() }

func (t *Transaction) Revert() { t.ops.Revert() }

// Commands returns the operations in apply order.
func (t *Transaction) Commands() []command.Command { return t.ops.Commands() }
