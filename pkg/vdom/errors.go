package vdom

import (
	"fmt"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

// Sentinel errors. Returned errors carry occurrence details and match these
// with errors.Is.
var (
	ErrNotFound         = vterrors.New(vterrors.CodeNotFound)
	ErrNoParent         = vterrors.New(vterrors.CodeNoParent)
	ErrReadOnly         = vterrors.New(vterrors.CodeReadOnly)
	ErrNoListeners      = vterrors.New(vterrors.CodeNoListeners)
	ErrForeignNode      = vterrors.New(vterrors.CodeForeignNode)
	ErrHierarchyRequest = vterrors.New(vterrors.CodeHierarchyRequest)
	ErrUnknownProperty  = vterrors.New(vterrors.CodeUnknownProperty)
	ErrInvalidValue     = vterrors.New(vterrors.CodeInvalidValue)
)

func newError(code string, format string, args ...any) error {
	return vterrors.New(code).WithDetail(fmt.Sprintf(format, args...))
}
