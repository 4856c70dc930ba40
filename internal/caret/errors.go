package caret

import "github.com/dshills/keyjar/internal/dom"

// ErrNoSelection is returned by Save when the document has no selection or
// the selection lies outside the region. It is the same value as
// dom.ErrNoSelection so callers can test for either.
var ErrNoSelection = dom.ErrNoSelection
