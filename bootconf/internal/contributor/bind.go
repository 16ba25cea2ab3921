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
	"errors"

	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/conf"
)

// WithBoundProperties upgrades an UNBOUND_IMPORT contributor to
// BOUND_IMPORT (spec §4.5): spring.config.import,
// spring.config.activate.on-profile and
// spring.config.activate.on-cloud-platform are read from the
// contributor's own property set, resolving any ${...} placeholder
// against active, the whole-tree binder built from every currently
// active contributor. all is the same merge without the activation
// filter, consulted only to tell "truly absent" apart from "present on
// a contributor that just isn't active right now" when classifying a
// resolution failure as InactiveConfigDataAccess.
func WithBoundProperties(node *Contributor, active conf.Properties, all conf.Properties) (*Contributor, error) {
	ps := node.Properties

	importVal, err := resolveOwn(ps, KeyConfigImport, active, all)
	if err != nil {
		return nil, err
	}
	onProfile, err := resolveOwn(ps, KeyActivateOnProfile, active, all)
	if err != nil {
		return nil, err
	}
	onCloud, err := resolveOwn(ps, KeyActivateOnCloudPlatform, active, all)
	if err != nil {
		return nil, err
	}

	cp := node.clone()
	cp.Kind = KindBoundImport
	cp.OnProfile = onProfile
	cp.OnCloudPlatform = onCloud
	if importVal != "" {
		cp.Imports = location.Parse(importVal)
	} else {
		cp.Imports = nil
	}
	if ps != nil {
		cp.IgnoreProfiles = ps.Options.Has(loader.IgnoreProfiles)
	}
	return cp, nil
}

// resolveOwn reads key from ps's own data (raw, unresolved) and resolves
// any placeholder it contains against active; "" if the key is absent.
func resolveOwn(ps *loader.PropertySet, key string, active, all conf.Properties) (string, error) {
	if ps == nil || ps.Properties == nil || !ps.Properties.Has(key) {
		return "", nil
	}
	raw := ps.Properties.Get(key)
	resolved, err := active.Resolve(raw)
	if err != nil {
		return "", classifyBindError(err, key, all)
	}
	return resolved, nil
}

// classifyBindError turns a placeholder-resolution failure into
// InactiveConfigDataAccess when the missing key exists somewhere in the
// unfiltered tree (it is just not active right now), matching spec
// §4.5's "If binding fails because a referenced source is inactive, the
// failure is surfaced as InactiveConfigDataAccess."
func classifyBindError(err error, key string, all conf.Properties) error {
	var notFound *conf.PlaceholderNotFoundError
	if errors.As(err, &notFound) && all != nil && all.Has(notFound.Key) {
		return bcerrors.Wrap(bcerrors.KindInactiveConfigDataAccess, err,
			"binding %s referenced inactive property %q", key, notFound.Key)
	}
	return bcerrors.Wrap(bcerrors.KindInvalidConfigDataProperty, err, "binding %s failed", key)
}
