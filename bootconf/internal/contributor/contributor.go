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

// Package contributor implements the immutable contributor tree, spec
// §4.5: every mutation (child-splice, kind-upgrade) produces a new node,
// with path-copy replacement of ancestors up to the root.
package contributor

import (
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
)

// Kind is the tagged-sum variant a Contributor plays, mapping spec §9's
// "deep inheritance of contributor variants" onto a single flat enum
// plus the shared payload fields already on Contributor.
type Kind int

const (
	KindRoot Kind = iota
	KindExisting
	KindInitialImport
	KindUnboundImport
	KindBoundImport
	KindEmptyLocation
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "ROOT"
	case KindExisting:
		return "EXISTING"
	case KindInitialImport:
		return "INITIAL_IMPORT"
	case KindUnboundImport:
		return "UNBOUND_IMPORT"
	case KindBoundImport:
		return "BOUND_IMPORT"
	case KindEmptyLocation:
		return "EMPTY_LOCATION"
	default:
		return "UNKNOWN"
	}
}

// Phase groups a contributor's children by the processing phase that
// produced them (spec §3, §4.6): BEFORE_PROFILE_ACTIVATION is always
// processed, and in its entirety, before any AFTER_PROFILE_ACTIVATION
// children exist.
type Phase int

const (
	PhaseBefore Phase = iota
	PhaseAfter
)

// Well-known property keys a BOUND_IMPORT's own property set may carry
// (spec §6 "Input properties").
const (
	KeyConfigImport            = "spring.config.import"
	KeyConfigOnNotFound        = "spring.config.on-not-found"
	KeyActivateOnProfile       = "spring.config.activate.on-profile"
	KeyActivateOnCloudPlatform = "spring.config.activate.on-cloud-platform"
)

// Contributor is one node of the tree: its Kind tags which payload
// fields are meaningful. Contributors are never mutated in place — every
// "with_*" operation in this package returns a new value (or a new
// pointer via Tree.WithReplacement).
type Contributor struct {
	Kind     Kind
	Location *location.Location // nil for ROOT
	Resource *resourceloader.Resource

	// Properties is this contributor's own bound property set — the one
	// it contributes to the environment, not the whole-tree merge.
	Properties *loader.PropertySet

	// Imports, OnProfile, OnCloudPlatform, IgnoreProfiles are populated
	// by WithBoundProperties from the property set's spring.config.*
	// keys, once a contributor reaches KindBoundImport.
	Imports         []*location.Location
	OnProfile       string
	OnCloudPlatform string
	IgnoreProfiles  bool

	children map[Phase][]*Contributor
}

// Children returns this contributor's children for phase, in insertion
// order.
func (c *Contributor) Children(phase Phase) []*Contributor {
	if c == nil {
		return nil
	}
	return c.children[phase]
}

// HasChildren reports whether phase has any children at all.
func (c *Contributor) HasChildren(phase Phase) bool {
	return len(c.children[phase]) > 0
}

// clone makes a shallow copy of c, safe to mutate before publishing.
func (c *Contributor) clone() *Contributor {
	cp := *c
	cp.children = cloneChildren(c.children)
	return &cp
}

func cloneChildren(m map[Phase][]*Contributor) map[Phase][]*Contributor {
	if m == nil {
		return nil
	}
	out := make(map[Phase][]*Contributor, len(m))
	for phase, kids := range m {
		out[phase] = append([]*Contributor(nil), kids...)
	}
	return out
}

// WithChildren returns a new Contributor with children attached under
// phase (spec §4.5's with_children). Only meaningful on a BOUND_IMPORT
// or INITIAL_IMPORT (or ROOT, for the initial tree construction).
func (c *Contributor) WithChildren(phase Phase, children []*Contributor) *Contributor {
	cp := c.clone()
	if cp.children == nil {
		cp.children = map[Phase][]*Contributor{}
	}
	cp.children[phase] = append([]*Contributor(nil), children...)
	return cp
}

// Tree is an immutable contributor tree rooted at a synthetic ROOT node.
type Tree struct {
	Root *Contributor
}

// Of builds the synthetic ROOT whose only children are the initial
// locations, under phase BEFORE (spec §4.5 "of(contributors)").
func Of(children []*Contributor) *Tree {
	root := &Contributor{Kind: KindRoot}
	root = root.WithChildren(PhaseBefore, children)
	return &Tree{Root: root}
}

// WithReplacement returns a new Tree with old replaced by next at its
// former position, path-copying every ancestor up to the root (spec
// §4.5's with_replacement). If old is not found, the tree is returned
// unchanged.
func (t *Tree) WithReplacement(old, next *Contributor) *Tree {
	if t.Root == old {
		return &Tree{Root: next}
	}
	root, ok := replace(t.Root, old, next)
	if !ok {
		return t
	}
	return &Tree{Root: root}
}

func replace(node, old, next *Contributor) (*Contributor, bool) {
	for phase, kids := range node.children {
		for i, k := range kids {
			if k == old {
				clone := node.clone()
				newKids := append([]*Contributor(nil), kids...)
				newKids[i] = next
				clone.children[phase] = newKids
				return clone, true
			}
			if replaced, ok := replace(k, old, next); ok {
				clone := node.clone()
				newKids := append([]*Contributor(nil), kids...)
				newKids[i] = replaced
				clone.children[phase] = newKids
				return clone, true
			}
		}
	}
	return node, false
}

// Walk visits every node depth-first, pre-order: a node yields itself
// first, then its children under PhaseBefore in insertion order, then
// its children under PhaseAfter in insertion order (spec §4.5
// "Iteration"). visit returning false stops the walk early.
func (t *Tree) Walk(visit func(*Contributor) bool) {
	walk(t.Root, visit)
}

func walk(node *Contributor, visit func(*Contributor) bool) bool {
	if !visit(node) {
		return false
	}
	for _, phase := range []Phase{PhaseBefore, PhaseAfter} {
		for _, child := range node.children[phase] {
			if !walk(child, visit) {
				return false
			}
		}
	}
	return true
}

// Find returns the first node (pre-order) for which pred is true.
func (t *Tree) Find(pred func(*Contributor) bool) *Contributor {
	var found *Contributor
	t.Walk(func(c *Contributor) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}
