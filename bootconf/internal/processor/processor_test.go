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

package processor

import (
	"context"
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/internal/activation"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/internal/importer"
	"github.com/go-spring/spring-bootconf/bootconf/internal/resolver"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
	"github.com/go-spring/stdlib/testing/assert"
)

type memFS struct {
	files map[string]string
}

func (f *memFS) GetResource(path string) (resourceloader.Resource, error) {
	if body, ok := f.files[path]; ok {
		b := []byte(body)
		return resourceloader.Resource{ID: path, Exists: true, Read: func() ([]byte, error) { return b, nil }}, nil
	}
	return resourceloader.Resource{ID: path, Exists: false}, nil
}
func (f *memFS) GetResources(pattern string) ([]resourceloader.Resource, error) { return nil, nil }
func (f *memFS) IsDirectory(path string) bool                                   { return false }
func (f *memFS) Exists(path string) bool                                        { _, ok := f.files[path]; return ok }
func (f *memFS) Subdirectories(path string) ([]string, error)                   { return nil, nil }

func initialImportNode(raw string) *contributor.Contributor {
	loc := location.Parse(raw)[0]
	return &contributor.Contributor{Kind: contributor.KindInitialImport, Location: loc, Imports: []*location.Location{loc}}
}

func TestProcess_RecursiveImport(t *testing.T) {
	fs := &memFS{files: map[string]string{
		"classpath:application.yaml": "bar: base\nspring.config.import: classpath:extra.yaml\n",
		"classpath:extra.yaml":       "bar: x\n",
	}}

	registry := loader.DefaultRegistry()
	res := resolver.New(resolver.Context{ResourceLoader: fs, Loaders: registry})
	imp := importer.New(importer.ActionFail)

	root := &contributor.Contributor{Kind: contributor.KindBoundImport, Imports: []*location.Location{
		location.Parse("classpath:application.yaml")[0],
	}}
	tree := &contributor.Tree{Root: root}

	act := &activation.Context{}
	out, err := Process(context.Background(), tree, imp, res, registry, act)
	assert.Nil(t, err)

	merged := contributor.MergeProperties(out, nil)
	assert.That(t, merged.Get("bar")).Equal("x")
}
