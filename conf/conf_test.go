/*
 * Copyright 2024 The Go-Spring Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-spring/stdlib/testing/assert"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	assert.Nil(t, os.WriteFile(path, []byte("foo:\n  bar: 1\n"), 0o644))

	p, err := Load(path)
	assert.Nil(t, err)
	assert.That(t, p.Get("foo.bar")).Equal("1")
}

func TestLoad_OptionalMissing(t *testing.T) {
	p, err := Load("optional:file:" + filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Nil(t, err)
	assert.That(t, p.Storage == nil).Equal(true)
}

func TestMapNamed(t *testing.T) {
	p, err := MapNamed(map[string]any{"a": map[string]any{"b": "c"}}, "test-origin")
	assert.Nil(t, err)
	assert.That(t, p.Get("a.b")).Equal("c")
}
