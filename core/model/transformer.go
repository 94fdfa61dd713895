package model

import "gonum.org/v1/gonum/mat"

// Transformer は数値行列を変換するインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform は学習済みのパラメータでデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// CategoricalTransformer は文字列の表 (n_samples × n_features) を変換するインターフェース
type CategoricalTransformer interface {
	FitStrings(data [][]string) error
	TransformStrings(data [][]string) ([][]string, error)
	FitTransformStrings(data [][]string) ([][]string, error)
}

// Encoder は文字列の表を数値行列へ符号化するインターフェース
type Encoder interface {
	Fit(data [][]string) error
	Transform(data [][]string) (mat.Matrix, error)
	FitTransform(data [][]string) (mat.Matrix, error)
}

// FeatureNamer は変換後の特徴量名を返す
type FeatureNamer interface {
	GetFeatureNamesOut(inputFeatures []string) []string
}
