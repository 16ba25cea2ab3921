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

package resourceloader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-spring/stdlib/errutil"
)

// FileSystem is the ResourceLoader backing the two schemes spec §6's
// default search locations use: "file:" against the OS filesystem
// directly, and "classpath:" against a configured root directory — Go
// has no JVM classpath, so ClasspathRoot stands in for it, typically the
// directory holding the compiled binary's embedded or co-located
// resources.
type FileSystem struct {
	ClasspathRoot string
}

// NewFileSystem creates a FileSystem-backed ResourceLoader rooted, for
// "classpath:" locations, at classpathRoot.
func NewFileSystem(classpathRoot string) *FileSystem {
	return &FileSystem{ClasspathRoot: classpathRoot}
}

// resolvePath interprets the scheme prefix a resolver encodes into path
// ("classpath:..." or "file:..." or no prefix at all, treated as "file:")
// and maps it onto a concrete OS path.
func (fs *FileSystem) resolvePath(path string) string {
	if rest, ok := strings.CutPrefix(path, "classpath:"); ok {
		return filepath.Join(fs.ClasspathRoot, rest)
	}
	if rest, ok := strings.CutPrefix(path, "file:"); ok {
		return rest
	}
	return path
}

func (fs *FileSystem) GetResource(path string) (Resource, error) {
	real := fs.resolvePath(path)
	info, err := os.Stat(real)
	if err != nil {
		if os.IsNotExist(err) {
			return Resource{ID: real, Exists: false}, nil
		}
		return Resource{}, errutil.Explain(err, "stat %s error", real)
	}
	if info.IsDir() {
		return Resource{}, errutil.Explain(nil, "%s is a directory, expected a file", real)
	}
	return Resource{
		ID:     real,
		Exists: true,
		Read:   func() ([]byte, error) { return os.ReadFile(real) },
	}, nil
}

func (fs *FileSystem) GetResources(pattern string) ([]Resource, error) {
	real := fs.resolvePath(pattern)
	matches, err := filepath.Glob(real)
	if err != nil {
		return nil, errutil.Explain(err, "glob %s error", real)
	}
	sort.Strings(matches)

	out := make([]Resource, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		match := m
		out = append(out, Resource{
			ID:     match,
			Exists: true,
			Read:   func() ([]byte, error) { return os.ReadFile(match) },
		})
	}
	return out, nil
}

func (fs *FileSystem) IsDirectory(path string) bool {
	info, err := os.Stat(fs.resolvePath(path))
	return err == nil && info.IsDir()
}

func (fs *FileSystem) Exists(path string) bool {
	_, err := os.Stat(fs.resolvePath(path))
	return err == nil
}

// Subdirectories lists immediate subdirectories, returned as paths in
// the same scheme-prefixed domain as path so callers can feed them back
// into the other ResourceLoader methods uniformly.
func (fs *FileSystem) Subdirectories(path string) ([]string, error) {
	entries, err := os.ReadDir(fs.resolvePath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errutil.Explain(err, "read dir %s error", path)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, joinScheme(path, e.Name()))
		}
	}
	return out, nil
}

func joinScheme(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
