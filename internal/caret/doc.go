// Package caret converts between the live selection of an editable region
// and character offsets into the region's text content.
//
// A Position survives any restructuring of the region that keeps its text
// content intact. That is the contract a syntax highlighter relies on: the
// editor saves the caret, lets the highlighter rebuild the markup, and
// restores the caret into whatever nodes now hold the same characters.
//
//	pos, err := codec.Save()
//	if err != nil {
//	    return err
//	}
//	highlighter.Highlight(root, pos)
//	codec.Restore(pos)
//
// Offsets count Unicode code points. Element boundaries have zero width.
package caret
