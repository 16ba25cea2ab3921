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

package bootconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
	"github.com/go-spring/spring-bootconf/conf"
	"github.com/go-spring/spring-bootconf/environment"
	"github.com/go-spring/stdlib/testing/assert"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.Nil(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestProcessAndApply_BaseAndProfileDoc(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "application.yaml", "server:\n  port: 8080\nspring:\n  profiles:\n    active: dev\n---\nspring:\n  config:\n    activate:\n      on-profile: dev\nserver:\n  port: 9090\n")

	env := environment.New()
	opts := Options{
		ResourceLoader: resourceloader.NewFileSystem(dir),
		InitialProperties: func() *conf.MutableProperties {
			p, err := conf.MapNamed(map[string]any{"spring.config.location": "classpath:application.yaml"}, "initial")
			assert.Nil(t, err)
			return p
		}(),
	}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Nil(t, err)

	merged := env.Merged()
	assert.That(t, merged.Get("server.port")).Equal("9090")
	assert.That(t, env.ActiveProfiles()).Equal([]string{"dev"})
}

func TestProcessAndApply_RecursiveImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "application.yaml", "spring:\n  config:\n    import: classpath:extra.yaml\nfoo: base\n")
	writeFile(t, dir, "extra.yaml", "foo: extra\nbar: x\n")

	env := environment.New()
	opts := Options{
		ResourceLoader: resourceloader.NewFileSystem(dir),
		InitialProperties: func() *conf.MutableProperties {
			p, err := conf.MapNamed(map[string]any{"spring.config.location": "classpath:application.yaml"}, "initial")
			assert.Nil(t, err)
			return p
		}(),
	}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Nil(t, err)

	merged := env.Merged()
	assert.That(t, merged.Get("foo")).Equal("extra")
	assert.That(t, merged.Get("bar")).Equal("x")
}

func TestProcessAndApply_MandatoryLocationMissingFails(t *testing.T) {
	dir := t.TempDir()

	env := environment.New()
	opts := Options{
		ResourceLoader: resourceloader.NewFileSystem(dir),
		InitialProperties: func() *conf.MutableProperties {
			p, err := conf.MapNamed(map[string]any{"spring.config.location": "classpath:missing.yaml"}, "initial")
			assert.Nil(t, err)
			return p
		}(),
	}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Error(t, err).Matches("ConfigDataLocationNotFound")
}

func TestProcessAndApply_OptionalLocationMissingSucceeds(t *testing.T) {
	dir := t.TempDir()

	env := environment.New()
	opts := Options{
		ResourceLoader: resourceloader.NewFileSystem(dir),
		InitialProperties: func() *conf.MutableProperties {
			p, err := conf.MapNamed(map[string]any{"spring.config.location": "optional:classpath:missing.yaml"}, "initial")
			assert.Nil(t, err)
			return p
		}(),
	}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Nil(t, err)
	assert.That(t, len(env.PropertySources())).Equal(0)
}

// The following exercise the default search locations (spec §6, scenario
// S1 "Defaults only") with no spring.config.location override at all —
// DefaultFileLocations resolves against the process working directory,
// so each test pins it to its own t.TempDir() via t.Chdir.

func TestProcessAndApply_DefaultsOnly_EmptyProjectSucceeds(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env := environment.New()
	opts := Options{ResourceLoader: resourceloader.NewFileSystem(dir)}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Nil(t, err)
	assert.That(t, len(env.PropertySources())).Equal(0)
}

func TestProcessAndApply_DefaultsOnly_FindsApplicationYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "application.yaml", "server:\n  port: 8080\n")

	env := environment.New()
	opts := Options{ResourceLoader: resourceloader.NewFileSystem(dir)}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Nil(t, err)
	assert.That(t, env.Merged().Get("server.port")).Equal("8080")
}

func TestProcessAndApply_DefaultsOnly_GlobConfigSubdirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	subdir := filepath.Join(dir, "config", "local")
	assert.Nil(t, os.MkdirAll(subdir, 0o755))
	writeFile(t, subdir, "application.yaml", "feature.enabled: \"true\"\n")

	env := environment.New()
	opts := Options{ResourceLoader: resourceloader.NewFileSystem(dir)}

	err := ProcessAndApply(context.Background(), env, opts)
	assert.Nil(t, err)
	assert.That(t, env.Merged().Get("feature.enabled")).Equal("true")
}
