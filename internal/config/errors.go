package config

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch indicates a setting has the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidValue indicates a setting has the right type but an
	// unusable value.
	ErrInvalidValue = errors.New("invalid value")
)

// SettingError reports a problem with one setting.
type SettingError struct {
	Path string
	Err  error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}
