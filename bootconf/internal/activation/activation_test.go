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

package activation

import (
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/conf"
	"github.com/go-spring/stdlib/testing/assert"
)

func mkNode(t *testing.T, onProfile string, kv map[string]any) *contributor.Contributor {
	t.Helper()
	p, err := conf.MapNamed(kv, "t")
	assert.Nil(t, err)
	return &contributor.Contributor{
		Kind:       contributor.KindBoundImport,
		OnProfile:  onProfile,
		Properties: &loader.PropertySet{Name: "t", Properties: p},
	}
}

func TestContext_Active_OnProfile(t *testing.T) {
	ctx := &Context{ProfilesKnown: true, Profiles: []string{"dev"}}

	active, err := ctx.Active(mkNode(t, "dev", nil))
	assert.Nil(t, err)
	assert.That(t, active).Equal(true)

	active, err = ctx.Active(mkNode(t, "prod", nil))
	assert.Nil(t, err)
	assert.That(t, active).Equal(false)

	active, err = ctx.Active(mkNode(t, "!prod", nil))
	assert.Nil(t, err)
	assert.That(t, active).Equal(true)
}

func TestContext_Active_ProfilesUnknown(t *testing.T) {
	ctx := &Context{ProfilesKnown: false}
	active, err := ctx.Active(mkNode(t, "dev", nil))
	assert.Nil(t, err)
	assert.That(t, active).Equal(false)
}

func TestDeduceProfiles_GroupsTransitive(t *testing.T) {
	root := mkNode(t, "", map[string]any{
		"spring.profiles.active":    "web",
		"spring.profiles.group.web": "api,ui",
		"spring.profiles.group.ui":  "ui-core",
	})
	tree := &contributor.Tree{Root: root}

	profiles, _, err := DeduceProfiles(tree, "", nil)
	assert.Nil(t, err)
	assert.That(t, contains(profiles, "api")).Equal(true)
	assert.That(t, contains(profiles, "ui-core")).Equal(true)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
