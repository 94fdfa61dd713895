package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		reason  string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "StandardScaler.Fit",
			reason:  "empty data",
			err:     fmt.Errorf("test error"),
			wantMsg: "scoreprep: StandardScaler.Fit: empty data: test error",
		},
		{
			name:    "without original error",
			op:      "OneHotEncoder.Fit",
			reason:  "empty features",
			err:     nil,
			wantMsg: "scoreprep: OneHotEncoder.Fit: empty features",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.reason, tt.err)
			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestDimensionErrors(t *testing.T) {
	err := NewDimensionError("StandardScaler.Transform", 2, 3)
	assert.Equal(t, "scoreprep: StandardScaler.Transform: want 2 columns, got 3", err.Error())

	var dimErr *DimensionError
	require.True(t, As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Got)
	assert.False(t, dimErr.Rows)

	err = NewRowCountError("ColumnTransformer", 4, 2)
	assert.Equal(t, "scoreprep: ColumnTransformer: want 4 rows, got 2", err.Error())
	require.True(t, As(err, &dimErr))
	assert.True(t, dimErr.Rows)
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("ColumnTransformer", "Transform")
	assert.Equal(t, "scoreprep: ColumnTransformer.Transform called before Fit", err.Error())

	var notFittedErr *NotFittedError
	require.True(t, As(err, &notFittedErr))
	assert.Equal(t, "ColumnTransformer", notFittedErr.Transformer)
	assert.True(t, Is(err, ErrTransform))
	assert.Equal(t, KindTransform, KindOf(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("schema.target", "must not be empty", "")
	assert.Equal(t, "scoreprep: invalid schema.target: must not be empty (got: )", err.Error())

	var valErr *ValidationError
	require.True(t, As(err, &valErr))
	assert.Equal(t, "schema.target", valErr.Field)
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in SimpleImputer.Fit")

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "in SimpleImputer.Fit")
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Transform", 10, 5)

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "in Transform: expected 10, got 5")
}

func TestMark(t *testing.T) {
	assert.Nil(t, Mark(nil, ErrSchema))

	err := Mark(New("column \"gender\" not found"), ErrSchema)
	assert.True(t, Is(err, ErrSchema))
	assert.False(t, Is(err, ErrFit))
	assert.Equal(t, "column \"gender\" not found", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"data load", Mark(New("open"), ErrDataLoad), KindDataLoad},
		{"schema", Mark(New("missing"), ErrSchema), KindSchema},
		{"fit", Mark(New("empty group"), ErrFit), KindFit},
		{"transform", Mark(New("dims"), ErrTransform), KindTransform},
		{"persistence", Mark(New("disk full"), ErrPersistence), KindPersistence},
		{"wrapped", Wrap(Mark(New("missing"), ErrSchema), "outer"), KindSchema},
		{"unmarked", New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapPipeline(t *testing.T) {
	assert.Nil(t, WrapPipeline("Run", nil))

	cause := Mark(New("open train.csv: no such file or directory"), ErrDataLoad)
	err := WrapPipeline("DataTransformation.Run", cause)

	var pipelineErr *PipelineError
	require.True(t, As(err, &pipelineErr))
	assert.Equal(t, "DataTransformation.Run", pipelineErr.Op)
	assert.Equal(t, KindDataLoad, pipelineErr.Kind)
	assert.Equal(t, "errors_test.go", pipelineErr.File)
	assert.Greater(t, pipelineErr.Line, 0)
	assert.True(t, Is(err, ErrDataLoad))
	assert.True(t, strings.HasPrefix(err.Error(), "scoreprep: DataTransformation.Run: data load error in [errors_test.go] line ["))
	assert.Contains(t, err.Error(), "no such file or directory")

	// 二重ラップしない
	again := WrapPipeline("Outer", err)
	var outer *PipelineError
	require.True(t, As(again, &outer))
	assert.Equal(t, "DataTransformation.Run", outer.Op)
}

func TestWrapPipelineWithoutStack(t *testing.T) {
	err := WrapPipeline("BuildPreprocessor", fmt.Errorf("plain"))

	var pipelineErr *PipelineError
	require.True(t, As(err, &pipelineErr))
	assert.Equal(t, KindInternal, pipelineErr.Kind)
	assert.Equal(t, "errors_test.go", pipelineErr.File)
}
