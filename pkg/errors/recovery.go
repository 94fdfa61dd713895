package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError is a recovered panic. Stack is the panicking goroutine's stack.
type PanicError struct {
	Op    string
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
}

// Unwrap returns the panic value when it is an error, so its marks stay visible to Is.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recover turns a panic into an error on a named result:
//
//	func (ct *ColumnTransformer) Transform(frame *dataset.Frame) (_ *mat.Dense, err error) {
//	    defer errors.Recover(&err, "ColumnTransformer.Transform")
//
// An error already set by the function is kept and annotated with the panic.
func Recover(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = errors.Wrapf(*err, "panic in %s: %v", op, r)
		return
	}
	*err = errors.WithStack(&PanicError{Op: op, Value: r, Stack: debug.Stack()})
}

// SafeExecute calls fn, returning a *PanicError if it panics.
func SafeExecute(op string, fn func() error) (err error) {
	defer Recover(&err, op)
	return fn()
}
