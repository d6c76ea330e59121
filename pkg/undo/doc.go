// Package undo keeps the reversible history of document edits.
//
// Every committed change to a document goes through [History.Execute]: the
// forward action runs immediately and the (do, undo) pair is pushed onto the
// undo stack. Executing anything new clears the redo stack, so history never
// branches.
//
//	h := undo.New()
//	h.ExecuteNamed("add room", func() { rooms.Append(r) }, func() { rooms.Remove(r) })
//	h.Undo() // room removed
//	h.Redo() // room appended again
//
// # Failures
//
// A panic inside an undo or redo action is recovered. Under the default
// [Swallow] policy the entry still moves to the opposite stack, the failure
// is logged at warn level and reported to the history hooks, and Undo/Redo
// return nil; the document state for that entry is then indeterminate.
// Under [Preserve] the entry stays where it was and the call returns a
// TRANSACTION_FAILED error.
package undo
