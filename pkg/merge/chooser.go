package merge

import (
	"context"
	"errors"

	errs "github.com/matzehuels/elementmerge/pkg/errors"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// ErrCancelled is returned by a [Chooser] when the user backs out.
var ErrCancelled = errors.New("merge cancelled")

// Choice is the outcome of target selection.
type Choice struct {
	Target          model.ID
	MergeProperties bool
}

// Chooser picks the surviving element among validated candidates.
// defaultMerge is the initial value offered for merging documentation and
// properties.
type Chooser interface {
	Choose(ctx context.Context, elements []*model.Element, defaultMerge bool) (Choice, error)
}

// ChooserFunc adapts a function to the [Chooser] interface.
type ChooserFunc func(ctx context.Context, elements []*model.Element, defaultMerge bool) (Choice, error)

func (f ChooserFunc) Choose(ctx context.Context, elements []*model.Element, defaultMerge bool) (Choice, error) {
	return f(ctx, elements, defaultMerge)
}

// FixedChooser makes a non-interactive choice. An empty Target selects the
// first element; a nil MergeProperties keeps the default.
type FixedChooser struct {
	Target          model.ID
	MergeProperties *bool
}

func (c FixedChooser) Choose(ctx context.Context, elements []*model.Element, defaultMerge bool) (Choice, error) {
	if err := ctx.Err(); err != nil {
		return Choice{}, err
	}
	if len(elements) == 0 {
		return Choice{}, errs.New(errs.ErrCodeInvalidSelection, MsgTooFew)
	}

	choice := Choice{Target: elements[0].ID, MergeProperties: defaultMerge}
	if c.MergeProperties != nil {
		choice.MergeProperties = *c.MergeProperties
	}
	if c.Target == "" {
		return choice, nil
	}
	for _, e := range elements {
		if e.ID == c.Target {
			choice.Target = e.ID
			return choice, nil
		}
	}
	return Choice{}, errs.New(errs.ErrCodeInvalidSelection, "target %s is not one of the selected elements", c.Target)
}
