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

package contributor

import (
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/conf"
	"github.com/go-spring/stdlib/testing/assert"
)

func propSet(t *testing.T, name string, kv map[string]any) *loader.PropertySet {
	t.Helper()
	p, err := conf.MapNamed(kv, name)
	assert.Nil(t, err)
	return &loader.PropertySet{Name: name, Properties: p}
}

func TestTree_WalkOrder(t *testing.T) {
	a := &Contributor{Kind: KindUnboundImport, Properties: propSet(t, "a", map[string]any{"k": "a"})}
	b := &Contributor{Kind: KindUnboundImport, Properties: propSet(t, "b", map[string]any{"k": "b"})}
	tree := Of([]*Contributor{a, b})

	var order []string
	tree.Walk(func(c *Contributor) bool {
		if c.Properties != nil {
			order = append(order, c.Properties.Name)
		}
		return true
	})
	assert.That(t, order).Equal([]string{"a", "b"})
}

func TestTree_WithReplacement(t *testing.T) {
	a := &Contributor{Kind: KindUnboundImport, Properties: propSet(t, "a", map[string]any{"k": "a"})}
	tree := Of([]*Contributor{a})

	bound := a.clone()
	bound.Kind = KindBoundImport
	next := tree.WithReplacement(a, bound)

	found := next.Find(func(c *Contributor) bool { return c.Kind == KindBoundImport })
	assert.That(t, found != nil).Equal(true)

	orig := tree.Find(func(c *Contributor) bool { return c.Kind == KindUnboundImport })
	assert.That(t, orig != nil).Equal(true)
}

func TestTree_WithChildren(t *testing.T) {
	root := &Contributor{Kind: KindBoundImport, Properties: propSet(t, "root", map[string]any{})}
	tree := &Tree{Root: root}

	child := &Contributor{Kind: KindUnboundImport, Properties: propSet(t, "child", map[string]any{})}
	newRoot := root.WithChildren(PhaseBefore, []*Contributor{child})
	tree = tree.WithReplacement(root, newRoot)

	assert.That(t, len(tree.Root.Children(PhaseBefore))).Equal(1)
}

func TestWithBoundProperties(t *testing.T) {
	ps := propSet(t, "n", map[string]any{
		KeyConfigImport:      "classpath:extra.yaml",
		KeyActivateOnProfile: "dev",
	})
	node := &Contributor{Kind: KindUnboundImport, Properties: ps}

	active := ps.Properties
	bound, err := WithBoundProperties(node, active, active)
	assert.Nil(t, err)
	assert.That(t, bound.Kind).Equal(KindBoundImport)
	assert.That(t, bound.OnProfile).Equal("dev")
	assert.That(t, len(bound.Imports)).Equal(1)
}

func TestWithBoundProperties_InactiveAccess(t *testing.T) {
	ps := propSet(t, "n", map[string]any{
		KeyActivateOnProfile: "${missing.key}",
	})
	node := &Contributor{Kind: KindUnboundImport, Properties: ps}

	active := conf.New()
	all := conf.New()
	_ = all.MergeMap(map[string]any{"missing": map[string]any{"key": "x"}}, "elsewhere")

	_, err := WithBoundProperties(node, active, all)
	assert.Error(t, err).Matches("InactiveConfigDataAccess")
}
