package merge

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/elementmerge/pkg/command"
	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/observability"
)

// NewBatch builds one [Transaction] per element other than target, in list
// order, and wraps them in a single compound labelled [Label].
//
// It returns nil without error when fewer than two elements are given or
// target is not among them. Repeated IDs are merged once.
//
// Placements rebound to the target by one transaction are visible to the
// transactions built after it, so the batch never leaves two placements of
// the target on one diagram.
func NewBatch(m *model.Model, elements []model.ID, target model.ID, mergeProperties bool) (*command.Compound, error) {
	if len(elements) < 2 || target == "" {
		return nil, nil
	}
	found := false
	for _, id := range elements {
		if id == target {
			found = true
			break
		}
	}
	if !found {
		return nil, nil
	}

	batch := command.NewCompound(Label)
	pl := newPlan(target)
	seen := map[model.ID]bool{target: true}
	for _, id := range elements {
		if seen[id] {
			continue
		}
		seen[id] = true
		t, err := newTransaction(m, target, id, mergeProperties, pl)
		if err != nil {
			return nil, err
		}
		batch.Add(t)
	}
	return batch, nil
}

// Result describes an executed merge.
type Result struct {
	Target          model.ID
	Merged          []model.ID
	MergeProperties bool
	Relationships   int
	Rebound         int
	Migrated        int
	Duration        time.Duration

	// Command is the batch pushed onto the stack.
	Command command.Command
}

// Merger validates a selection, asks its Chooser for a target and executes
// the resulting batch on its Stack as a single undoable step.
//
// Merger is not safe for concurrent use; neither is the model it edits.
type Merger struct {
	Model           *model.Model
	Stack           *command.Stack
	Chooser         Chooser
	MergeProperties bool
	Logger          *log.Logger
}

// NewMerger creates a merger. A nil stack keeps unlimited history, a nil
// chooser picks the first element and a nil logger uses log.Default().
func NewMerger(m *model.Model, stack *command.Stack, chooser Chooser, logger *log.Logger) *Merger {
	if stack == nil {
		stack = command.NewStack(0)
	}
	if chooser == nil {
		chooser = FixedChooser{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Merger{
		Model:           m,
		Stack:           stack,
		Chooser:         chooser,
		MergeProperties: true,
		Logger:          logger,
	}
}

// Merge merges the selected elements into the chosen target.
//
// It returns (nil, nil) when the chooser reports [ErrCancelled]; nothing is
// changed in that case. Selection errors are returned before anything is
// built.
func (mg *Merger) Merge(ctx context.Context, ids []model.ID) (*Result, error) {
	logger := mg.logger()

	elements, err := ValidateSelection(mg.Model, ids)
	if err != nil {
		logger.Debug("selection rejected", "elements", len(ids), "error", err)
		return nil, err
	}

	start := time.Now()
	hooks := observability.Merge()
	hooks.OnMergeStart(ctx, len(elements))

	res, err := mg.merge(ctx, ids, elements)
	if res != nil {
		res.Duration = time.Since(start)
		hooks.OnMergeComplete(ctx, string(res.Target), len(res.Merged), res.Duration, nil)
		logger.Info("merged elements",
			"target", res.Target,
			"sources", len(res.Merged),
			"relationships", res.Relationships,
			"rebound", res.Rebound,
			"migrated", res.Migrated,
			"duration", res.Duration)
		return res, nil
	}
	hooks.OnMergeComplete(ctx, "", 0, time.Since(start), err)
	return nil, err
}

func (mg *Merger) merge(ctx context.Context, ids []model.ID, elements []*model.Element) (*Result, error) {
	chooser := mg.Chooser
	if chooser == nil {
		chooser = FixedChooser{}
	}
	choice, err := chooser.Choose(ctx, elements, mg.MergeProperties)
	if errors.Is(err, ErrCancelled) {
		mg.logger().Info("merge cancelled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	batch, err := NewBatch(mg.Model, ids, choice.Target, choice.MergeProperties)
	if err != nil || batch == nil {
		return nil, err
	}

	res := &Result{
		Target:          choice.Target,
		MergeProperties: choice.MergeProperties,
		Command:         batch,
	}
	for _, cmd := range batch.Commands() {
		t := cmd.(*Transaction)
		res.Merged = append(res.Merged, t.Source)
		res.Relationships += t.Relationships
		res.Rebound += t.Rebound
		res.Migrated += t.Migrated
	}

	if mg.Stack != nil {
		mg.Stack.Execute(batch)
	} else {
		batch.Apply()
	}
	return res, nil
}

func (mg *Merger) logger() *log.Logger {
	if mg.Logger != nil {
		return mg.Logger
	}
	return log.Default()
}
