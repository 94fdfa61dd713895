package errors

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Kind classifies a failure of the preprocessing pipeline.
type Kind string

const (
	KindDataLoad    Kind = "data load"
	KindSchema      Kind = "schema"
	KindFit         Kind = "fit"
	KindTransform   Kind = "transform"
	KindPersistence Kind = "persistence"
	KindInternal    Kind = "internal"
)

// Kind markers. Attach them with Mark and test them with Is.
var (
	// ErrDataLoad marks a dataset file that cannot be opened or parsed as CSV.
	ErrDataLoad = New("data load error")

	// ErrSchema marks a missing column, an unparsable cell or an invalid schema descriptor.
	ErrSchema = New("schema error")

	// ErrFit marks a failure while learning statistics from training data.
	ErrFit = New("fit error")

	// ErrTransform marks a failure while applying learned statistics.
	ErrTransform = New("transform error")

	// ErrPersistence marks a failure of the object store.
	ErrPersistence = New("persistence error")
)

// KindOf returns the kind carried by err's markers, or KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDataLoad):
		return KindDataLoad
	case errors.Is(err, ErrSchema):
		return KindSchema
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	case errors.Is(err, ErrFit):
		return KindFit
	case errors.Is(err, ErrTransform):
		return KindTransform
	default:
		return KindInternal
	}
}

// PipelineError is the single error type returned from the public boundaries of the
// transformation component. It keeps the original cause, the boundary that caught it and
// the source location of that boundary. The full stack of the cause is kept by Err and is
// printed with %+v.
type PipelineError struct {
	Op   string
	Kind Kind
	File string
	Line int
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("scoreprep: %s: %s error in [%s] line [%d]: %v", e.Op, e.Kind, e.File, e.Line, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *PipelineError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error.type", "pipeline").
		Str("operation", e.Op).
		Str("kind", string(e.Kind)).
		Str("file", e.File).
		Int("line", e.Line).
		Str("cause", e.Err.Error())
}

// WrapPipeline wraps err into a *PipelineError for the boundary op, recording the caller's
// file and line. An error that already is a *PipelineError is returned unchanged.
func WrapPipeline(op string, err error) error {
	if err == nil {
		return nil
	}
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return err
	}

	_, file, line, _ := runtime.Caller(1)
	return errors.WithStackDepth(&PipelineError{
		Op:   op,
		Kind: KindOf(err),
		File: filepath.Base(file),
		Line: line,
		Err:  err,
	}, 1)
}
