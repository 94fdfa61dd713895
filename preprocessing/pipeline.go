package preprocessing

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/core/model"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// Step names used in pipeline descriptions and error messages.
const (
	StepImputer       = "imputer"
	StepOneHotEncoder = "one_hot_encoder"
	StepScaler        = "scaler"
)

var (
	_ model.Transformer            = (*NumericPipeline)(nil)
	_ model.Transformer            = (*StandardScaler)(nil)
	_ model.Transformer            = (*SimpleImputer)(nil)
	_ model.CategoricalTransformer = (*SimpleImputer)(nil)
	_ model.Encoder                = (*CategoricalPipeline)(nil)
	_ model.Encoder                = (*OneHotEncoder)(nil)
	_ model.FeatureNamer           = (*OneHotEncoder)(nil)
)

// NumericPipeline は数値列の前処理: SimpleImputer(median) → StandardScaler
type NumericPipeline struct {
	model.BaseEstimator

	Imputer *SimpleImputer
	Scaler  *StandardScaler
}

// NewNumericPipeline は中央値補完と標準化 (平均0, 分散1) を行うパイプラインを作成する
func NewNumericPipeline() *NumericPipeline {
	return &NumericPipeline{
		Imputer: NewSimpleImputer(StrategyMedian),
		Scaler:  NewStandardScaler(true, true),
	}
}

// Fit は各ステップを順に学習する
func (p *NumericPipeline) Fit(X mat.Matrix) error {
	_, err := p.FitTransform(X)
	return err
}

// FitTransform は各ステップを順に学習し、変換結果を次のステップへ渡す
func (p *NumericPipeline) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if p.IsFitted() {
		return nil, errors.Mark(errors.WithStack(errors.ErrAlreadyFitted), errors.ErrFit)
	}
	filled, err := p.Imputer.FitTransform(X)
	if err != nil {
		return nil, stepError("fit", StepImputer, err)
	}
	scaled, err := p.Scaler.FitTransform(filled)
	if err != nil {
		return nil, stepError("fit", StepScaler, err)
	}
	p.SetFitted()
	return scaled, nil
}

// Transform は学習済みの各ステップを順に適用する
func (p *NumericPipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("NumericPipeline", "Transform")
	}
	filled, err := p.Imputer.Transform(X)
	if err != nil {
		return nil, stepError("apply", StepImputer, err)
	}
	scaled, err := p.Scaler.Transform(filled)
	if err != nil {
		return nil, stepError("apply", StepScaler, err)
	}
	return scaled, nil
}

// String はパイプラインの文字列表現を返す
func (p *NumericPipeline) String() string {
	return describe(StepImputer, p.Imputer, StepScaler, p.Scaler)
}

// CategoricalPipeline はカテゴリ列の前処理:
// SimpleImputer(most_frequent) → OneHotEncoder(ignore) → StandardScaler(with_mean=false)
type CategoricalPipeline struct {
	model.BaseEstimator

	Imputer *SimpleImputer
	Encoder *OneHotEncoder
	Scaler  *StandardScaler
}

// NewCategoricalPipeline は最頻値補完、one-hot化、中心化なしの標準化を行うパイプラインを作成する
func NewCategoricalPipeline() *CategoricalPipeline {
	return &CategoricalPipeline{
		Imputer: NewSimpleImputer(StrategyMostFrequent),
		Encoder: NewOneHotEncoder(),
		Scaler:  NewStandardScaler(false, true),
	}
}

// Fit は各ステップを順に学習する
func (p *CategoricalPipeline) Fit(data [][]string) error {
	_, err := p.FitTransform(data)
	return err
}

// FitTransform は各ステップを順に学習し、変換結果を次のステップへ渡す
func (p *CategoricalPipeline) FitTransform(data [][]string) (mat.Matrix, error) {
	if p.IsFitted() {
		return nil, errors.Mark(errors.WithStack(errors.ErrAlreadyFitted), errors.ErrFit)
	}
	filled, err := p.Imputer.FitTransformStrings(data)
	if err != nil {
		return nil, stepError("fit", StepImputer, err)
	}
	encoded, err := p.Encoder.FitTransform(filled)
	if err != nil {
		return nil, stepError("fit", StepOneHotEncoder, err)
	}
	scaled, err := p.Scaler.FitTransform(encoded)
	if err != nil {
		return nil, stepError("fit", StepScaler, err)
	}
	p.SetFitted()
	return scaled, nil
}

// Transform は学習済みの各ステップを順に適用する
func (p *CategoricalPipeline) Transform(data [][]string) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("CategoricalPipeline", "Transform")
	}
	filled, err := p.Imputer.TransformStrings(data)
	if err != nil {
		return nil, stepError("apply", StepImputer, err)
	}
	encoded, err := p.Encoder.Transform(filled)
	if err != nil {
		return nil, stepError("apply", StepOneHotEncoder, err)
	}
	scaled, err := p.Scaler.Transform(encoded)
	if err != nil {
		return nil, stepError("apply", StepScaler, err)
	}
	return scaled, nil
}

// GetFeatureNamesOut はone-hot化後の特徴量名を返す
func (p *CategoricalPipeline) GetFeatureNamesOut(inputFeatures []string) []string {
	return p.Encoder.GetFeatureNamesOut(inputFeatures)
}

// String はパイプラインの文字列表現を返す
func (p *CategoricalPipeline) String() string {
	return describe(StepImputer, p.Imputer, StepOneHotEncoder, "OneHotEncoder(handle_unknown=ignore)", StepScaler, p.Scaler)
}

func stepError(verb, step string, err error) error {
	return errors.Wrapf(err, "failed to %s step '%s'", verb, step)
}

func describe(steps ...interface{}) string {
	parts := make([]string, 0, len(steps)/2)
	for i := 0; i+1 < len(steps); i += 2 {
		parts = append(parts, fmt.Sprintf("(%s, %v)", steps[i], steps[i+1]))
	}
	return "Pipeline(steps=[" + strings.Join(parts, ", ") + "])"
}
