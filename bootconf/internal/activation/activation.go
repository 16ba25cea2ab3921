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

// Package activation implements the ActivationContext and profile
// deduction machinery, spec §4.7: the (cloud-platform?, profiles?) pair
// every BOUND_IMPORT's predicates are evaluated against, built up across
// the three construction phases.
package activation

import (
	"github.com/expr-lang/expr"

	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
)

const (
	KeyProfilesActive  = "spring.profiles.active"
	KeyProfilesDefault = "spring.profiles.default"
	KeyProfilesInclude = "spring.profiles.include"
	KeyProfilesGroup   = "spring.profiles.group." // + group name
)

// Context is the (platform?, profiles?) pair spec §4.7 names.
// ProfilesKnown false means "not yet deduced" (phase 1 or 2): Profiles
// is then ignored and profile-conditional contributors are inactive and
// skipped, per spec's Phase 1 rule.
type Context struct {
	Platform      string
	ProfilesKnown bool
	Profiles      []string
}

// Active implements the activation predicate a BOUND_IMPORT's
// OnProfile/OnCloudPlatform fields are checked against.
func (c *Context) Active(node *contributor.Contributor) (bool, error) {
	if node.OnCloudPlatform != "" {
		if !matchesPlatform(node.OnCloudPlatform, c.Platform) {
			return false, nil
		}
	}
	if node.OnProfile != "" {
		if !c.ProfilesKnown {
			// Phase 1/2: profile-conditional contributors are inactive
			// and skipped (spec §4.7 Phase 1).
			return false, nil
		}
		ok, err := evalOnProfile(node.OnProfile, c.Profiles)
		if err != nil {
			return false, bcerrors.Wrap(bcerrors.KindInvalidConfigDataProperty, err,
				"invalid on-profile expression %q", node.OnProfile)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matchesPlatform is a simple equality match: the cloud-platform
// coordinate spec §4.7 Phase 2 infers is compared against the
// contributor's declared on-cloud-platform name.
func matchesPlatform(want, have string) bool {
	return want == have
}

// evalOnProfile compiles and runs an on-profile boolean expression
// (AND/OR/NOT over profile names, e.g. "dev & !test") against the
// active profile set, via expr-lang/expr — the same small boolean DSL
// conf's `expr:` validation tag already uses.
func evalOnProfile(source string, active []string) (bool, error) {
	env := map[string]any{"profiles": active}

	program, err := expr.Compile(translate(source), expr.Env(env))
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	b, _ := out.(bool)
	return b, nil
}

// translate rewrites Spring's on-profile boolean-expression syntax
// ("dev & !test", "dev | prod", a bare profile name) into expr-lang
// syntax by substituting each bare profile identifier with a
// ("name" in profiles) membership test, since expr-lang identifiers
// must be declared env fields.
func translate(source string) string {
	return rewriteProfileNames(source)
}
