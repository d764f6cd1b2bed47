// Package command provides reversible operations and an undo/redo stack.
//
// # Overview
//
// Every mutation of a model is expressed as a [Command]: a unit of work with
// [Command.Apply] and [Command.Revert] and no other side effects. All data a
// command needs to revert is captured when it is constructed (or, where a
// command documents it, when it is applied), never read back from global
// state at revert time.
//
// Commands compose with [Compound], which applies its children in order and
// reverts them in exact reverse order. A compound is itself a command, so
// batches nest:
//
//	batch := command.NewCompound("Merge Elements")
//	batch.Add(first)
//	batch.Add(second)
//	batch.Apply()  // first, second
//	batch.Revert() // second, first
//
// # Stack
//
// [Stack] plays the role of an editor's command stack. [Stack.Execute] applies
// a command once and records it; [Stack.Undo] and [Stack.Redo] then alternate
// [Command.Revert] and [Command.Apply] on the recorded commands. Executing a
// new command discards anything that could have been redone.
//
// # Concurrency
//
// Commands and stacks are not safe for concurrent use. Callers that share a
// stack across goroutines must serialise access themselves.
package command
