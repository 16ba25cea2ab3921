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

package importer

import (
	"context"
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/internal/resolver"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
	"github.com/go-spring/stdlib/testing/assert"
)

type fakeFS struct {
	files map[string]string
	dirs  map[string]bool
}

func (f *fakeFS) GetResource(path string) (resourceloader.Resource, error) {
	if body, ok := f.files[path]; ok {
		b := []byte(body)
		return resourceloader.Resource{ID: path, Exists: true, Read: func() ([]byte, error) { return b, nil }}, nil
	}
	return resourceloader.Resource{ID: path, Exists: false}, nil
}

func (f *fakeFS) GetResources(pattern string) ([]resourceloader.Resource, error) { return nil, nil }
func (f *fakeFS) IsDirectory(path string) bool                                   { return f.dirs[path] }
func (f *fakeFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok || f.dirs[path]
}
func (f *fakeFS) Subdirectories(path string) ([]string, error) { return nil, nil }

func TestResolveAndLoad_BaseAndProfile(t *testing.T) {
	fs := &fakeFS{files: map[string]string{
		"classpath:/application.yaml":     "foo: 1\n",
		"classpath:/application-dev.yaml": "foo: 2\n",
	}}
	r := resolver.New(resolver.Context{
		ResourceLoader: fs,
		Loaders:        loader.DefaultRegistry(),
	})
	im := New(ActionFail)
	loc := location.Parse("classpath:/application.yaml")[0]

	entries, err := im.ResolveAndLoad(context.Background(), r, loader.DefaultRegistry(), []*location.Location{loc}, []string{"dev"})
	assert.Nil(t, err)
	assert.That(t, len(entries)).Equal(1)
}

func TestResolveAndLoad_MandatoryMissingFails(t *testing.T) {
	fs := &fakeFS{files: map[string]string{}}
	r := resolver.New(resolver.Context{ResourceLoader: fs, Loaders: loader.DefaultRegistry()})
	im := New(ActionFail)
	loc := location.Parse("file:/nope/application.yaml")[0]

	_, err := im.ResolveAndLoad(context.Background(), r, loader.DefaultRegistry(), []*location.Location{loc}, nil)
	assert.Error(t, err).Matches("ConfigDataLocationNotFound")
}

func TestResolveAndLoad_OptionalMissingSucceeds(t *testing.T) {
	fs := &fakeFS{files: map[string]string{}}
	r := resolver.New(resolver.Context{ResourceLoader: fs, Loaders: loader.DefaultRegistry()})
	im := New(ActionFail)
	loc := location.Parse("optional:file:/nope/application.yaml")[0]

	entries, err := im.ResolveAndLoad(context.Background(), r, loader.DefaultRegistry(), []*location.Location{loc}, nil)
	assert.Nil(t, err)
	assert.That(t, len(entries)).Equal(0)
}

func TestResolveAndLoad_DedupAcrossCalls(t *testing.T) {
	fs := &fakeFS{files: map[string]string{"classpath:/application.yaml": "foo: 1\n"}}
	r := resolver.New(resolver.Context{ResourceLoader: fs, Loaders: loader.DefaultRegistry()})
	im := New(ActionFail)
	loc := location.Parse("classpath:/application.yaml")[0]

	first, err := im.ResolveAndLoad(context.Background(), r, loader.DefaultRegistry(), []*location.Location{loc}, nil)
	assert.Nil(t, err)
	assert.That(t, len(first)).Equal(1)

	second, err := im.ResolveAndLoad(context.Background(), r, loader.DefaultRegistry(), []*location.Location{loc}, nil)
	assert.Nil(t, err)
	assert.That(t, len(second)).Equal(0)
	assert.That(t, im.LoadedLocations(loc.RawValue)).Equal(true)
}
