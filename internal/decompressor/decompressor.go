// Copyright 2014 The Cayley Authors. All rights reserved.
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

// Package decompressor unwraps gzip and bzip2 compressed ontology files.
package decompressor

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
)

// Compression is the kind of compression detected on an input stream.
type Compression string

const (
	None  Compression = "none"
	Gzip  Compression = "gzip"
	Bzip2 Compression = "bzip2"
)

const (
	gzipMagic  = "\x1f\x8b"
	b2zipMagic = "BZh"
)

// Detect sniffs the first bytes of r and returns a reader of the decompressed
// stream. Inputs shorter than a magic header, including empty ones, are
// returned as plain text.
func Detect(r io.Reader) (io.Reader, Compression, error) {
	br := bufio.NewReader(r)
	buf, err := br.Peek(len(b2zipMagic))
	if err != nil && err != io.EOF {
		return nil, None, err
	}
	switch {
	case bytes.HasPrefix(buf, []byte(gzipMagic)):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, Gzip, err
		}
		return zr, Gzip, nil
	case bytes.HasPrefix(buf, []byte(b2zipMagic)):
		return bzip2.NewReader(br), Bzip2, nil
	default:
		return br, None, nil
	}
}
