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
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrDiscovery means the walk could not start; it aborts the run
	ErrDiscovery = errors.Base("discovery failed")
	// ErrFileRead means a discovered file could not be opened or read
	ErrFileRead = errors.Base("reading file")
	// ErrFileWrite means rewritten content could not be persisted
	ErrFileWrite = errors.Base("writing file")
	// ErrDecode means the file is not UTF-8 text
	ErrDecode = errors.Base("decoding file")
)
