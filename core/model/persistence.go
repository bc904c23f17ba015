package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Save gob-encodes a fitted estimator to w. Only exported fields are kept,
// which for the estimators in this module is all of their learned state.
//
//	scaler := preprocessing.NewStandardScaler()
//	_ = scaler.Fit(X)
//	err := model.Save(w, scaler)
func Save(w io.Writer, est interface{}) error {
	if err := gob.NewEncoder(w).Encode(est); err != nil {
		return errors.Wrap(err, "encode estimator")
	}
	return nil
}

// Load decodes an estimator written by Save into est, which must be a pointer
// to the same type.
func Load(r io.Reader, est interface{}) error {
	if err := gob.NewDecoder(r).Decode(est); err != nil {
		return errors.Wrap(err, "decode estimator")
	}
	return nil
}

// SaveFile is Save to a new file at path.
func SaveFile(path string, est interface{}) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return Save(f, est)
}

// LoadFile is Load from the file at path.
func LoadFile(path string, est interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Load(f, est)
}
