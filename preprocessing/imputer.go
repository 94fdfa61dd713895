package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/core/model"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// ImputeStrategy は欠損値の補完方法
type ImputeStrategy string

const (
	// StrategyMedian は列の中央値で補完する（数値列用）
	StrategyMedian ImputeStrategy = "median"
	// StrategyMostFrequent は列の最頻値で補完する（カテゴリ列用）
	StrategyMostFrequent ImputeStrategy = "most_frequent"
)

// SimpleImputer はscikit-learn互換の欠損値補完器
//
// 数値行列ではNaNを、文字列の表では空文字列を欠損値として扱う。
// 統計値は学習データの非欠損値のみから計算される。
type SimpleImputer struct {
	model.BaseEstimator

	// Strategy は補完方法
	Strategy ImputeStrategy

	// Statistics は数値列ごとの補完値 (median)
	Statistics []float64

	// EmptyFeatures は学習データに観測値が1つもなかった数値列。補完値は0になる。
	EmptyFeatures []int

	// Fill はカテゴリ列ごとの補完値 (most_frequent)
	Fill []string

	// NFeatures は入力特徴量の数
	NFeatures int
}

// NewSimpleImputer は新しいSimpleImputerを作成する
//
// 使用例:
//
//	imputer := preprocessing.NewSimpleImputer(preprocessing.StrategyMedian)
//	filled, err := imputer.FitTransform(X)
func NewSimpleImputer(strategy ImputeStrategy) *SimpleImputer {
	return &SimpleImputer{Strategy: strategy}
}

// Fit は各列の中央値を学習する
//
// 観測値のない列は削除せず、補完値0で保持する (scikit-learnの keep_empty_features=True と同じ)。
func (s *SimpleImputer) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "SimpleImputer.Fit")
	if s.IsFitted() {
		return errors.Mark(errors.WithStack(errors.ErrAlreadyFitted), errors.ErrFit)
	}
	if s.Strategy != StrategyMedian {
		return errors.NewValidationError("strategy", "numeric data requires the median strategy", s.Strategy)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}

	stats := make([]float64, c)
	var empty []int
	observed := make([]float64, 0, r)
	for j := 0; j < c; j++ {
		observed = observed[:0]
		for i := 0; i < r; i++ {
			if v := X.At(i, j); !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			empty = append(empty, j)
			continue
		}
		stats[j] = median(observed)
	}

	s.Statistics = stats
	s.EmptyFeatures = empty
	s.NFeatures = c
	s.SetFitted()
	return nil
}

// Transform はNaNを学習済みの中央値で置き換える
func (s *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() || s.Statistics == nil {
		return nil, errors.NewNotFittedError("SimpleImputer", "Transform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("SimpleImputer.Transform", s.NFeatures, c)
	}
	result := mat.DenseCopyOf(X)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(result.At(i, j)) {
				result.Set(i, j, s.Statistics[j])
			}
		}
	}
	return result, nil
}

// FitTransform は学習と変換を同時に行う
func (s *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// FitStrings は各カテゴリ列の最頻値を学習する
//
// 同数の場合は辞書順で最小の値を選ぶ。
func (s *SimpleImputer) FitStrings(data [][]string) (err error) {
	defer errors.Recover(&err, "SimpleImputer.FitStrings")
	if s.IsFitted() {
		return errors.Mark(errors.WithStack(errors.ErrAlreadyFitted), errors.ErrFit)
	}
	if s.Strategy != StrategyMostFrequent {
		return errors.NewValidationError("strategy", "categorical data requires the most_frequent strategy", s.Strategy)
	}
	nFeatures, err := tableWidth("SimpleImputer.FitStrings", data, -1)
	if err != nil {
		return err
	}

	fill := make([]string, nFeatures)
	for j := 0; j < nFeatures; j++ {
		counts := make(map[string]int)
		for _, row := range data {
			if row[j] != "" {
				counts[row[j]]++
			}
		}
		if len(counts) == 0 {
			return errors.NewValueError("SimpleImputer.FitStrings", fmt.Sprintf("feature %d has no observed values", j))
		}
		fill[j] = mostFrequent(counts)
	}

	s.Fill = fill
	s.NFeatures = nFeatures
	s.SetFitted()
	return nil
}

// TransformStrings は空文字列を学習済みの最頻値で置き換える
func (s *SimpleImputer) TransformStrings(data [][]string) ([][]string, error) {
	if !s.IsFitted() || s.Fill == nil {
		return nil, errors.NewNotFittedError("SimpleImputer", "TransformStrings")
	}
	if _, err := tableWidth("SimpleImputer.TransformStrings", data, s.NFeatures); err != nil {
		return nil, err
	}
	result := make([][]string, len(data))
	for i, row := range data {
		out := make([]string, len(row))
		for j, cell := range row {
			if cell == "" {
				cell = s.Fill[j]
			}
			out[j] = cell
		}
		result[i] = out
	}
	return result, nil
}

// FitTransformStrings は学習と変換を同時に行う
func (s *SimpleImputer) FitTransformStrings(data [][]string) ([][]string, error) {
	if err := s.FitStrings(data); err != nil {
		return nil, err
	}
	return s.TransformStrings(data)
}

// String は補完器の文字列表現を返す
func (s *SimpleImputer) String() string {
	return fmt.Sprintf("SimpleImputer(strategy=%s)", s.Strategy)
}

// median はスライスを並べ替えて中央値を返す。偶数個の場合は中央2値の平均。
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mostFrequent(counts map[string]int) string {
	best, bestCount := "", -1
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best, bestCount = value, count
		}
	}
	return best
}

// tableWidth は表の列数を検証して返す。want < 0 の場合は列数を問わない。
func tableWidth(op string, data [][]string, want int) (int, error) {
	if len(data) == 0 {
		if want >= 0 {
			return want, nil
		}
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	width := len(data[0])
	if want < 0 {
		if width == 0 {
			return 0, errors.NewModelError(op, "empty features", errors.ErrEmptyData)
		}
		want = width
	}
	for _, row := range data {
		if len(row) != want {
			return 0, errors.NewDimensionError(op, want, len(row))
		}
	}
	return want, nil
}
