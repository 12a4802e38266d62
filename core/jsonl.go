// Copyright 2025 Redfin Labs
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


package core

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single JSONL line. Article bodies run a few KB;
// 16 MiB leaves ample headroom.
const maxLineBytes = 16 << 20

// DecodeLine parses one JSONL line into a Record. Blank lines and invalid
// JSON return ErrMalformedLine.
func DecodeLine(line []byte) (Record, error) {
	trimmed := strings.TrimSpace(string(line))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: blank line", ErrMalformedLine)
	}

	var rec Record
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	return rec, nil
}

// EncodeLine serializes a record as a single JSON line including the
// trailing newline.
func EncodeLine(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// NewLineScanner wraps a reader in a line scanner sized for JSONL input.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return sc
}

// ReadAll loads every valid record from a JSONL file, skipping malformed
// lines. The second return value counts the skipped lines.
func ReadAll(path string) ([]Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read records %s: %w", path, err)
	}
	defer f.Close()

	var (
		records []Record
		skipped int
	)
	sc := NewLineScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		rec, err := DecodeLine(sc.Bytes())
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read records %s: %w", path, err)
	}
	return records, skipped, nil
}
