package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// ReadCSV loads a comma-separated file with a header row into a Frame.
// Failures to open or parse the file are marked errors.ErrDataLoad.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrDataLoad)
	}
	defer func() { _ = file.Close() }()

	frame, err := ParseCSV(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return frame, nil
}

// ParseCSV reads a header row and records from r.
func ParseCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Mark(errors.New("no columns to parse from file"), errors.ErrDataLoad)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid header"), errors.ErrDataLoad)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid record"), errors.ErrDataLoad)
	}
	return NewFrame(header, records)
}

// WriteMatrixCSV writes a matrix with a header row to path, creating parent directories.
func WriteMatrixCSV(path string, header []string, m mat.Matrix) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create output directory"), errors.ErrPersistence)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create file"), errors.ErrPersistence)
	}
	defer func() { _ = file.Close() }()

	if err := EncodeMatrixCSV(file, header, m); err != nil {
		return errors.Mark(err, errors.ErrPersistence)
	}
	return file.Close()
}

// EncodeMatrixCSV writes a matrix with a header row to w.
func EncodeMatrixCSV(w io.Writer, header []string, m mat.Matrix) error {
	r, c := m.Dims()
	if len(header) != c {
		return errors.NewDimensionError("EncodeMatrixCSV", c, len(header))
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return errors.WithStack(err)
	}
	row := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return errors.WithStack(err)
		}
	}
	writer.Flush()
	return errors.WithStack(writer.Error())
}
