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

package applier

import (
	"context"
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/internal/activation"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/internal/importer"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
	"github.com/go-spring/spring-bootconf/conf"
	"github.com/go-spring/spring-bootconf/environment"
	"github.com/go-spring/stdlib/testing/assert"
)

func node(t *testing.T, name string, kv map[string]any) *contributor.Contributor {
	t.Helper()
	p, err := conf.MapNamed(kv, name)
	assert.Nil(t, err)
	return &contributor.Contributor{
		Kind:       contributor.KindBoundImport,
		Resource:   &resourceloader.Resource{ID: name},
		Location:   location.Parse("classpath:" + name)[0],
		Properties: &loader.PropertySet{Name: name, Properties: p},
	}
}

func TestApply_AppendsSourcesInOrder(t *testing.T) {
	base := node(t, "application.yaml", map[string]any{"foo": "1"})
	profile := node(t, "application-dev.yaml", map[string]any{"foo": "2"})
	profile.Properties.Options = loader.ProfileSpecific

	root := &contributor.Contributor{Kind: contributor.KindRoot}
	root = root.WithChildren(contributor.PhaseBefore, []*contributor.Contributor{base, profile})
	tree := &contributor.Tree{Root: root}

	act := &activation.Context{ProfilesKnown: true, Profiles: []string{"dev"}}
	imp := importer.New(importer.ActionFail)
	env := environment.New()

	err := Apply(context.Background(), tree, act, environment.Profiles{Active: []string{"dev"}}, imp, nil, env)
	assert.Nil(t, err)

	sources := env.PropertySources()
	assert.That(t, len(sources)).Equal(2)
	assert.That(t, env.Merged().Get("foo")).Equal("2")
}

func TestApply_InvalidKeyInProfileDoc(t *testing.T) {
	profile := node(t, "application-dev.yaml", map[string]any{"spring.profiles.active": "x"})
	profile.Properties.Options = loader.ProfileSpecific

	root := &contributor.Contributor{Kind: contributor.KindRoot}
	root = root.WithChildren(contributor.PhaseBefore, []*contributor.Contributor{profile})
	tree := &contributor.Tree{Root: root}

	act := &activation.Context{}
	imp := importer.New(importer.ActionFail)
	env := environment.New()

	err := Apply(context.Background(), tree, act, environment.Profiles{}, imp, nil, env)
	assert.Error(t, err).Matches("InvalidConfigDataProperty")
}
