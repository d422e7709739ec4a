// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - check if file exists
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// WriteFileAtomic - write via a temporary file in the same directory
// so that a reader never sees a partial file
func WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	directory, base := filepath.Split(name)
	f, err := ioutil.TempFile(directory, "."+base+".*")
	if nil != err {
		return err
	}
	tmp := f.Name()

	_, err = f.Write(data)
	if nil == err {
		err = f.Chmod(perm)
	}
	if closeErr := f.Close(); nil == err {
		err = closeErr
	}
	if nil != err {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, name)
}
