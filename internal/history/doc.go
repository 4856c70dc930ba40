// Package history keeps the undo/redo log of an editable region.
//
// The log is a bounded list of snapshots with a movable pointer. Each
// snapshot holds the serialized markup of the region together with the
// caret position at the time it was taken:
//
//	[r0 r1 r2 r3]
//	       ^ at
//
// Undo moves the pointer back and redo moves it forward; neither removes
// records. Pushing while the pointer is not at the tail discards the
// records after it, so a new edit after an undo starts a new branch.
//
// When the log grows past its capacity the oldest record is dropped and
// the pointer shifts with it.
//
// Latch decides when a burst of keystrokes should produce a snapshot: once
// at the first qualifying keydown and once more when input settles.
package history
