package preprocessing

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/core/model"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// OneHotEncoder はscikit-learn互換のOne-Hotエンコーダー (handle_unknown="ignore")
// カテゴリカルな文字列データを0/1のバイナリベクトルに変換する
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories は各特徴量のカテゴリ一覧（ソート済み）
	Categories [][]string

	// CategoryToIdx は各特徴量のカテゴリ→インデックスマップ
	CategoryToIdx []map[string]int

	// NFeatures は入力特徴量数
	NFeatures int

	// NOutputs は出力特徴量数（全カテゴリの合計数）
	NOutputs int
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// 使用例:
//
//	encoder := preprocessing.NewOneHotEncoder()
//	err := encoder.Fit(data)
//	encoded, err := encoder.Transform(data)
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit は訓練データからカテゴリ情報を学習する
//
// パラメータ:
//   - data: 訓練データ (n_samples × n_features の文字列スライス)
//
// 戻り値:
//   - error: エラーが発生した場合
func (e *OneHotEncoder) Fit(data [][]string) (err error) {
	defer errors.Recover(&err, "OneHotEncoder.Fit")
	if e.IsFitted() {
		return errors.Mark(errors.WithStack(errors.ErrAlreadyFitted), errors.ErrFit)
	}
	nFeatures, err := tableWidth("OneHotEncoder.Fit", data, -1)
	if err != nil {
		return err
	}

	e.NFeatures = nFeatures
	e.Categories = make([][]string, nFeatures)
	e.CategoryToIdx = make([]map[string]int, nFeatures)
	e.NOutputs = 0

	for j := 0; j < nFeatures; j++ {
		categories := lo.Uniq(lo.Map(data, func(row []string, _ int) string { return row[j] }))
		sort.Strings(categories)
		e.Categories[j] = categories

		categoryToIdx := make(map[string]int, len(categories))
		for idx, category := range categories {
			categoryToIdx[category] = idx
		}
		e.CategoryToIdx[j] = categoryToIdx
		e.NOutputs += len(categories)
	}

	e.SetFitted()
	return nil
}

// Transform は学習済みのカテゴリ情報を使ってデータをone-hot encodingする
//
// 未知のカテゴリはその特徴量のブロック全体が0になる。
func (e *OneHotEncoder) Transform(data [][]string) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "OneHotEncoder.Transform")
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(data) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}
	if _, err := tableWidth("OneHotEncoder.Transform", data, e.NFeatures); err != nil {
		return nil, err
	}

	result := mat.NewDense(len(data), e.NOutputs, nil)
	for i, row := range data {
		outputIdx := 0
		for j, category := range row {
			if idx, exists := e.CategoryToIdx[j][category]; exists {
				result.Set(i, outputIdx+idx, 1.0)
			}
			outputIdx += len(e.Categories[j])
		}
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (e *OneHotEncoder) FitTransform(data [][]string) (mat.Matrix, error) {
	if err := e.Fit(data); err != nil {
		return nil, err
	}
	return e.Transform(data)
}

// GetFeatureNamesOut は変換後の特徴量の名前を返す
//
// 例:
//   - 入力特徴量名が["gender", "lunch"]の場合
//   - 出力: ["gender_female", "gender_male", "lunch_free/reduced", "lunch_standard"]
func (e *OneHotEncoder) GetFeatureNamesOut(inputFeatures []string) []string {
	if !e.IsFitted() {
		return nil
	}
	outputFeatures := make([]string, 0, e.NOutputs)
	for i, categories := range e.Categories {
		inputFeatureName := fmt.Sprintf("x%d", i)
		if i < len(inputFeatures) {
			inputFeatureName = inputFeatures[i]
		}
		for _, category := range categories {
			outputFeatures = append(outputFeatures, inputFeatureName+"_"+category)
		}
	}
	return outputFeatures
}
