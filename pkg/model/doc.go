// Package model defines the annotated floor-plan document: rooms, seats and
// the background image they are drawn on.
//
// All coordinates stored here are in image-pixel space. A [Room] also keeps
// its outline normalized to the background size (each component in [0,1]);
// when that normalized outline is present it is authoritative, and pixel
// points are regenerated from it whenever they are stale and the image size
// is known.
//
// Rooms and seats live in ordered [Collection]s that publish insert, remove
// and update [Change] events so a renderer can redraw incrementally.
//
// The model performs no undo bookkeeping of its own. Edits that must be
// reversible are driven through package undo by packages draft and edit.
package model
