// Package scoreprep turns raw student performance records into numeric feature matrices
// for regression models.
//
// A ColumnTransformer is fitted on training data only and then applied unchanged to test
// data and, after it has been stored, to new rows at inference time.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scoreprep/transformation"
//	)
//
//	func main() {
//	    dt := transformation.NewDataTransformation(transformation.DefaultConfig())
//	    result, err := dt.Run("data/train.csv", "data/test.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    rows, cols := result.Train.Dims()
//	    fmt.Println(rows, cols, result.PreprocessorPath)
//	}
//
// # Packages
//
//   - dataset: CSV loading, column access and the column schema
//   - preprocessing: SimpleImputer, OneHotEncoder, StandardScaler and ColumnTransformer
//   - transformation: the train/test transformation stage and preprocessor persistence
//   - config: file and environment configuration
//   - report: histograms of transformed features
//   - core/model: estimator state, transformer interfaces and gob persistence
//   - pkg/errors: error types and pipeline error kinds
//   - pkg/log: structured logging on zerolog
//
// The scoreprep command wraps the transformation stage:
//
//	scoreprep transform --train data/train.csv --test data/test.csv --out-dir out
//	scoreprep inspect
//	scoreprep apply --input new.csv --output features.csv
//
// # Missing Values
//
// Numerical cells that are empty or hold a pandas NA token are imputed with the training
// median. Categorical cells are imputed with the most frequent training value. Categories
// not seen during fitting encode to all zeros.
package scoreprep
