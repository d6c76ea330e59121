// Package edit provides the undoable editing operations on an existing
// document: vertex handles, whole-room moves and resizes, room and seat
// management, selection and the clipboard.
//
// Every structural change is recorded in an undo.History as one
// transaction holding exact before/after snapshots. Refused edits (for
// example deleting a vertex from a triangle) return an INVALID_GEOMETRY
// error and leave both the document and the history untouched.
//
// Vertex dragging is the one exception to "every change is a transaction":
// [Vertex.DragVertex] moves the point live for preview, and
// [Vertex.CommitVertexDrag] records the whole gesture once on release.
package edit
