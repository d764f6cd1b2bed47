// Package pkg provides the core libraries for Elementmerge.
//
// # Overview
//
// Elementmerge folds duplicate elements of an architecture model into a single
// target element. Every change is a reversible command, so a merge of any
// number of elements can be undone and redone as one step. The pkg directory
// is organized into these areas:
//
//  1. [model] - The model arena: elements, relationships, diagrams, placements
//     and connections, addressed by ID
//  2. [command] - Reversible commands, batches and the undo/redo stack
//  3. [merge] - Selection rules, target choice and the merge transaction
//  4. [io], [store] - JSON documents and the file, redis and mongo backends
//  5. [render/nodelink] - Graphviz rendering of one diagram
//  6. [server], [config], [observability], [errors] - The HTTP API and
//     ambient infrastructure
//
// # Architecture
//
// The typical data flow of a merge:
//
//	JSON document / store
//	         ↓
//	    [io] package (decode into a model)
//	         ↓
//	    [merge] package (validate selection, choose target, build batch)
//	         ↓
//	    [command] package (execute on the stack; undo/redo)
//	         ↓
//	    [io] / [store] (write back)
//
// # Quick Start
//
//	m, _ := io.ImportJSON("model.json")
//	stack := command.NewStack(0)
//
//	merger := merge.NewMerger(m, stack, merge.FixedChooser{Target: "a"}, nil)
//	res, err := merger.Merge(ctx, []model.ID{"a", "b", "c"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Relationships, "relationships reconnected")
//
//	stack.Undo() // restores b and c with all their links
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/merge     # Examples only
//	go test -tags integration ./pkg/...  # Include redis and mongo tests
//
// [model]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/model
// [command]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/command
// [merge]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/merge
// [io]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/store
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/render/nodelink
// [server]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/elementmerge/pkg/errors
package pkg
