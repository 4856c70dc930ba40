package lua

import (
	"errors"

	"github.com/dshills/keyjar/internal/caret"
)

// errAny marks a test case that expects some error.
var errAny = errors.New("any error")

var highlightPos = caret.Collapsed(0)
