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

// Package processor implements with_processed_imports, spec §4.6: the
// fixed-point loop that alternately binds UNBOUND_IMPORT contributors
// and expands a BOUND_IMPORT's spring.config.import list into children.
package processor

import (
	"context"

	"github.com/go-spring/log"
	"github.com/go-spring/spring-bootconf/bootconf/internal/activation"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/internal/importer"
	"github.com/go-spring/spring-bootconf/bootconf/internal/resolver"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
)

var logTag = log.GetTag("bootconf_processor")

// Process runs with_processed_imports to its fixed point. phase is
// AFTER_PROFILE_ACTIVATION when act.ProfilesKnown, else
// BEFORE_PROFILE_ACTIVATION, per spec §4.6.
func Process(
	ctx context.Context,
	tree *contributor.Tree,
	imp *importer.Importer,
	res *resolver.Resolver,
	registry *loader.Registry,
	act *activation.Context,
) (*contributor.Tree, error) {

	phase := contributor.PhaseBefore
	if act.ProfilesKnown {
		phase = contributor.PhaseAfter
	}

	var profiles []string
	if act.ProfilesKnown {
		profiles = act.Profiles
	}

	iterations := 0
	for {
		target, err := findNext(tree, act, phase)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return tree, nil
		}
		iterations++
		log.Debugf(ctx, logTag, "fixed-point iteration %d: processing %s", iterations, target.Kind)

		if target.Kind == contributor.KindUnboundImport {
			bound, err := bindNode(tree, act, target)
			if err != nil {
				return nil, err
			}
			tree = tree.WithReplacement(target, bound)
			continue
		}

		updated, err := expandImports(ctx, imp, res, registry, target, phase, profiles)
		if err != nil {
			return nil, err
		}
		tree = tree.WithReplacement(target, updated)
	}
}

func bindNode(tree *contributor.Tree, act *activation.Context, node *contributor.Contributor) (*contributor.Contributor, error) {
	active := contributor.MergeProperties(tree, func(c *contributor.Contributor) bool {
		ok, err := act.Active(c)
		return err == nil && ok
	})
	all := contributor.MergeProperties(tree, nil)
	return contributor.WithBoundProperties(node, active, all)
}

func expandImports(
	ctx context.Context,
	imp *importer.Importer,
	res *resolver.Resolver,
	registry *loader.Registry,
	node *contributor.Contributor,
	phase contributor.Phase,
	profiles []string,
) (*contributor.Contributor, error) {

	entries, err := imp.ResolveAndLoad(ctx, res, registry, node.Imports, profiles)
	if err != nil {
		return nil, err
	}

	var children []*contributor.Contributor
	if len(entries) == 0 {
		children = []*contributor.Contributor{{Kind: contributor.KindEmptyLocation}}
	} else {
		// One UNBOUND_IMPORT child per property set. Resources are taken in
		// reverse order, so the first one the importer returned is walked
		// last and takes precedence; the sets of one resource keep their
		// file order, so the last property set in a file ends up with the
		// highest precedence after the pre-order walk (spec §4.6 step 3).
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			for _, ps := range e.Data.PropertySets {
				resCopy := e.Resource
				children = append(children, &contributor.Contributor{
					Kind:       contributor.KindUnboundImport,
					Location:   e.Location,
					Resource:   &resCopy,
					Properties: &ps,
				})
			}
		}
	}

	// The import list is consumed for this phase only: once children exist
	// under phase, findNext no longer selects the node for that phase.
	return node.WithChildren(phase, children), nil
}

// findNext implements spec §4.6 step 1: a pre-order walk for a node
// that is either (a) UNBOUND_IMPORT, or (b) active, has no children
// under phase, and has a non-empty imports list.
func findNext(tree *contributor.Tree, act *activation.Context, phase contributor.Phase) (*contributor.Contributor, error) {
	var target *contributor.Contributor
	var walkErr error
	tree.Walk(func(c *contributor.Contributor) bool {
		switch {
		case c.Kind == contributor.KindUnboundImport:
			target = c
			return false
		case (c.Kind == contributor.KindBoundImport || c.Kind == contributor.KindInitialImport) &&
			!c.HasChildren(phase) && len(c.Imports) > 0:
			active, err := act.Active(c)
			if err != nil {
				walkErr = err
				return false
			}
			if active {
				target = c
				return false
			}
		}
		return true
	})
	return target, walkErr
}
