// Package merge folds duplicate model elements into one surviving target.
//
// # Overview
//
// Merging element S into target T is a [Transaction]: an ordered batch of
// reversible operations that
//
//  1. re-points every relationship leaving S so that it leaves T
//  2. re-points every relationship entering S so that it enters T
//  3. rebinds every diagram placement of S to T, or, when the diagram
//     already shows T, moves the placement's connections onto T's
//     placement and removes the redundant one, dropping the connections
//     of anything nested inside it
//  4. optionally appends S's documentation and properties to T
//  5. deletes S from the model
//
// Every decision is made when the transaction is built, from the model as
// it is at that moment. Applying runs the steps in order and reverting runs
// them in reverse, restoring exact prior identifiers and positions.
//
// # Batches
//
// [NewBatch] builds one transaction per non-target element and wraps them in
// a single [command.Compound], so a multi-way merge undoes and redoes as one
// step. [Merger] adds selection validation, target choice and execution on a
// [command.Stack]:
//
//	m, _ := io.ImportJSON("model.json")
//	merger := &merge.Merger{
//	    Model:           m,
//	    Stack:           command.NewStack(100),
//	    Chooser:         merge.FixedChooser{},
//	    MergeProperties: true,
//	}
//	res, err := merger.Merge(ctx, []model.ID{"a", "b", "c"})
//
// # Selection
//
// [ValidateSelection] enforces the preconditions: at least two elements,
// all of the same type and with exactly the same name. Rejections are
// [errors.ErrCodeInvalidSelection] errors whose user message is ready for
// display.
//
// # Discovery
//
// [FindDuplicates] groups named elements that could be merged and [Describe]
// summarises an element for choosing a target: the diagrams that show it,
// its relations, and a preview of its properties.
package merge
