package render

import (
	"errors"
	"fmt"
)

// ErrTemplateMisconfigured marks startup failures caused by pages referencing
// templates or content that do not exist or do not execute.
var ErrTemplateMisconfigured = errors.New("render: template misconfigured")

// MisconfiguredError reports which page reference could not be resolved.
type MisconfiguredError struct {
	Page string
	Kind string // "template", "content" or "execute"
	Ref  string
	Err  error
}

func (e *MisconfiguredError) Error() string {
	msg := fmt.Sprintf("render: page %q: %s %q misconfigured", e.Page, e.Kind, e.Ref)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports a match for ErrTemplateMisconfigured.
func (e *MisconfiguredError) Is(target error) bool {
	return target == ErrTemplateMisconfigured
}

func (e *MisconfiguredError) Unwrap() error {
	return e.Err
}
