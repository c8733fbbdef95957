// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/walteh/tsfix/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileTask is the in-memory unit of work for one file
type FileTask struct {
	Path     string
	Original []byte
	Content  []byte
	mode     fs.FileMode
}

// 📥 LoadTask reads a file once. The handle is closed on every return path.
func LoadTask(path string) (*FileTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrFileRead, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrFileRead, err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%w: %s is a directory", ErrFileRead, path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Errorf("%w: %w", ErrFileRead, err)
	}
	if !utf8.Valid(data) {
		return nil, errors.Errorf("%w: %s is not valid UTF-8", ErrDecode, path)
	}

	return &FileTask{
		Path:     path,
		Original: data,
		Content:  data,
		mode:     info.Mode().Perm(),
	}, nil
}

// 🔁 Apply runs the rules over the task content
func (t *FileTask) Apply(rules []*rule.Rule, prefix string) {
	t.Content = []byte(rule.Apply(string(t.Content), rules, prefix))
}

// Changed reports whether the content differs byte for byte from what was read
func (t *FileTask) Changed() bool {
	return !bytes.Equal(t.Original, t.Content)
}

// 💾 Persist replaces the file with the new content.
//
// The content goes to a temp file in the same directory which is then renamed
// over the original, so readers never see a partial write.
func (t *FileTask) Persist() error {
	dir, base := filepath.Split(t.Path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tsfix-*")
	if err != nil {
		return errors.Errorf("%w: %w", ErrFileWrite, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Errorf("%w: %w", ErrFileWrite, cause)
	}

	if _, err := tmp.Write(t.Content); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(t.mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("%w: %w", ErrFileWrite, err)
	}
	if err := os.Rename(tmpName, t.Path); err != nil {
		os.Remove(tmpName)
		return errors.Errorf("%w: %w", ErrFileWrite, err)
	}
	return nil
}
