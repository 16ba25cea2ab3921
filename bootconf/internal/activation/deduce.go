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
	"strings"

	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/conf"
)

// DeduceProfiles implements spec §4.7 Phase 3's profile scan: every
// bound contributor's property set is scanned for spring.profiles.active
// / .default / .include / .group.<g>, skipping contributors with
// IGNORE_PROFILES, and raising InactiveConfigDataAccess for a
// contributor that is not currently active yet declares profile keys.
// Group membership (spring.profiles.group.<g>) is expanded transitively.
func DeduceProfiles(tree *contributor.Tree, platform string, additional []string) (active []string, defaults []string, err error) {
	probe := &Context{Platform: platform, ProfilesKnown: false}

	var activeList, defaultList, includeList []string
	groups := map[string][]string{}

	var walkErr error
	tree.Walk(func(c *contributor.Contributor) bool {
		if c.Properties == nil || c.Properties.Properties == nil {
			return true
		}
		ps := c.Properties.Properties
		declares := ps.Has(KeyProfilesActive) || ps.Has(KeyProfilesDefault) ||
			ps.Has(KeyProfilesInclude) || hasGroupKey(ps)

		active, err := probe.Active(c)
		if err != nil {
			walkErr = err
			return false
		}
		if !active {
			if declares {
				walkErr = bcerrors.New(bcerrors.KindInactiveConfigDataAccess,
					"contributor %s declares profile keys but is not active", c.Properties.Name)
				return false
			}
			return true
		}
		if c.IgnoreProfiles {
			return true
		}

		collectGroups(ps, groups)
		activeList = append(activeList, splitCSVKey(ps, KeyProfilesActive)...)
		defaultList = append(defaultList, splitCSVKey(ps, KeyProfilesDefault)...)
		includeList = append(includeList, splitCSVKey(ps, KeyProfilesInclude)...)
		return true
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}

	result := append([]string{}, includeList...)
	result = append(result, activeList...)
	result = append(result, additional...)
	if len(result) == 0 {
		result = defaultList
	}

	return expandGroups(dedupStrings(result), groups), dedupStrings(defaultList), nil
}

func hasGroupKey(p conf.Properties) bool {
	for _, k := range p.Keys() {
		if strings.HasPrefix(k, KeyProfilesGroup) {
			return true
		}
	}
	return false
}

func collectGroups(p conf.Properties, groups map[string][]string) {
	for _, k := range p.Keys() {
		if name, ok := strings.CutPrefix(k, KeyProfilesGroup); ok && name != "" {
			groups[name] = append(groups[name], splitCSV(p.Get(k))...)
		}
	}
}

func splitCSVKey(p conf.Properties, key string) []string {
	if !p.Has(key) {
		return nil
	}
	return splitCSV(p.Get(key))
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dedupStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// expandGroups resolves spring.profiles.group.<g> membership to a fixed
// point: a group referencing another group fully resolves (spec §4.7
// "applied transitively").
func expandGroups(profiles []string, groups map[string][]string) []string {
	seen := map[string]bool{}
	var out []string
	queue := append([]string{}, profiles...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
		queue = append(queue, groups[p]...)
	}
	return out
}
