package model

import (
	"encoding/gob"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// SaveObject はオブジェクトをgob形式でファイルに保存する
// 親ディレクトリが存在しない場合は作成する。書き込みは一時ファイルへ行い、
// 完了後にリネームするため、失敗時に壊れたファイルは残らない。
//
// パラメータ:
//   - path: 保存先のファイルパス
//   - obj: 保存するオブジェクト（公開フィールドのみ保存される）
//
// 戻り値:
//   - error: 保存に失敗した場合のエラー (errors.ErrPersistence でマーク済み)
//
// 使用例:
//
//	err := model.SaveObject("artifacts/preprocessor.gob", preprocessor)
func SaveObject(path string, obj interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to create directory %s", dir), errors.ErrPersistence)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to create file"), errors.ErrPersistence)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := SaveObjectToWriter(obj, tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to close file"), errors.ErrPersistence)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to move object to %s", path), errors.ErrPersistence)
	}
	return nil
}

// LoadObject はファイルからgob形式のオブジェクトを読み込む
//
// パラメータ:
//   - path: 読み込み元のファイルパス
//   - obj: 読み込み先のオブジェクト（ゼロ値のポインタを渡すこと）
//
// 戻り値:
//   - error: 読み込みに失敗した場合のエラー (errors.ErrPersistence でマーク済み)
func LoadObject(path string, obj interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to open file"), errors.ErrPersistence)
	}
	defer func() { _ = file.Close() }()

	return LoadObjectFromReader(obj, file)
}

// SaveObjectToWriter はオブジェクトをio.Writerに保存する
func SaveObjectToWriter(obj interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(obj); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to encode object"), errors.ErrPersistence)
	}
	return nil
}

// LoadObjectFromReader はio.Readerからオブジェクトを読み込む
func LoadObjectFromReader(obj interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(obj); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to decode object"), errors.ErrPersistence)
	}
	return nil
}
