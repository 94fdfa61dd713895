// Package errors はscoreprep全体で使うエラー型と、前処理パイプラインのエラー種別(Kind)を提供します。
//
// スタックトレースは github.com/cockroachdb/errors で記録され、`%+v` で表示できます。
// 構造化されたエラー型は zerolog.LogObjectMarshaler を実装しているので、
// pkg/log に渡すとフィールドとして出力されます。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// NotFittedError は学習前の変換器を使おうとしたときのエラーです。常に ErrTransform が付きます。
type NotFittedError struct {
	Transformer string
	Method      string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scoreprep: %s.%s called before Fit", e.Transformer, e.Method)
}

func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error.type", "not_fitted").
		Str("transformer", e.Transformer).
		Str("method", e.Method)
}

func NewNotFittedError(transformer, method string) error {
	err := &NotFittedError{Transformer: transformer, Method: method}
	return errors.Mark(errors.WithStackDepth(err, 1), ErrTransform)
}

// DimensionError は列数(Rows が真なら行数)が合わないときのエラーです。
type DimensionError struct {
	Op   string
	Want int
	Got  int
	Rows bool
}

func (e *DimensionError) Error() string {
	unit := "columns"
	if e.Rows {
		unit = "rows"
	}
	return fmt.Sprintf("scoreprep: %s: want %d %s, got %d", e.Op, e.Want, unit, e.Got)
}

func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error.type", "dimension").
		Str("operation", e.Op).
		Int("want", e.Want).
		Int("got", e.Got).
		Bool("rows", e.Rows)
}

// NewDimensionError は列数の不一致を表すエラーを作成します。
func NewDimensionError(op string, want, got int) error {
	return errors.WithStackDepth(&DimensionError{Op: op, Want: want, Got: got}, 1)
}

// NewRowCountError は行数の不一致を表すエラーを作成します。
func NewRowCountError(op string, want, got int) error {
	return errors.WithStackDepth(&DimensionError{Op: op, Want: want, Got: got, Rows: true}, 1)
}

// ValidationError は設定値・スキーマ・列グループの検証に失敗したときのエラーです。
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scoreprep: invalid %s: %s (got: %v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("error.type", "validation").
		Str("field", e.Field).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

func NewValidationError(field, reason string, value interface{}) error {
	return errors.WithStackDepth(&ValidationError{Field: field, Reason: reason, Value: value}, 1)
}

// ValueError はセルの値を解釈・補完できないときのエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scoreprep: %s: %s", e.Op, e.Message)
}

func NewValueError(op, message string) error {
	return errors.WithStackDepth(&ValueError{Op: op, Message: message}, 1)
}

// ModelError は原因となるエラー(ErrEmptyData など)に操作名と説明を付けます。
type ModelError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("scoreprep: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("scoreprep: %s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

func NewModelError(op, reason string, err error) error {
	return errors.WithStackDepth(&ModelError{Op: op, Reason: reason, Err: err}, 1)
}

// 以下は cockroachdb/errors の薄いラッパーです。スタックは呼び出し元で記録されます。

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

func Wrap(err error, message string) error { return errors.WrapWithDepth(1, err, message) }

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.WrapWithDepthf(1, err, format, args...)
}

func New(message string) error { return errors.NewWithDepth(1, message) }

func Newf(format string, args ...interface{}) error {
	return errors.NewWithDepthf(1, format, args...)
}

func WithStack(err error) error { return errors.WithStackDepth(err, 1) }

// Mark は reference を目印として付けます。Is(err, reference) が真になります。nil はそのまま返します。
func Mark(err, reference error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, reference)
}

var (
	ErrEmptyData     = New("empty data")
	ErrAlreadyFitted = New("transformer is already fitted")
)
