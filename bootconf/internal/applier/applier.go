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

// Package applier implements the applier, spec §4.8: the final tree
// walk that appends every active, bound property set to the
// environment, validates invalid keys, and checks that every mandatory
// location was satisfied.
package applier

import (
	"context"

	"github.com/go-spring/log"
	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/internal/activation"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/internal/importer"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/environment"
)

var logTag = log.GetTag("bootconf_applier")

// Apply walks tree in iteration order, appending every active
// BOUND_IMPORT contributor's property set to env (EXISTING contributors
// are not appended), then moves
// "defaultProperties" to the end and records the final profiles.
// mandatory lists the initial locations that must have been loaded or
// recorded optional somewhere during the run, checked against imp.
func Apply(
	ctx context.Context,
	tree *contributor.Tree,
	act *activation.Context,
	profiles environment.Profiles,
	imp *importer.Importer,
	mandatory []*location.Location,
	env *environment.Environment,
) error {

	if err := validate(tree); err != nil {
		return err
	}

	for _, loc := range mandatory {
		if loc.Optional {
			continue
		}
		if !imp.LoadedLocations(loc.RawValue) && !imp.OptionalLocations(loc.RawValue) {
			return bcerrors.New(bcerrors.KindConfigDataLocationNotFound,
				"mandatory location %s was never loaded", loc.RawValue)
		}
	}

	var walkErr error
	tree.Walk(func(c *contributor.Contributor) bool {
		if c.Kind != contributor.KindBoundImport {
			return true
		}
		if c.Properties == nil || c.Properties.Properties == nil {
			return true
		}
		active, err := act.Active(c)
		if err != nil {
			walkErr = err
			return false
		}
		if !active {
			return true
		}

		resourceID, locRaw := "", ""
		if c.Resource != nil {
			resourceID = c.Resource.ID
		}
		if c.Location != nil {
			locRaw = c.Location.RawValue
		}
		name := environment.SourceName(resourceID, locRaw)
		log.Infof(ctx, logTag, "adding property source %q", name)
		env.AddLast(environment.PropertySource{Name: name, Properties: c.Properties.Properties}, locRaw, resourceID)
		return true
	})
	if walkErr != nil {
		return walkErr
	}

	env.MoveDefaultPropertiesToEnd()
	log.Infof(ctx, logTag, "active profiles: %v, default profiles: %v", profiles.Active, profiles.Default)
	env.SetProfiles(profiles)
	return nil
}
