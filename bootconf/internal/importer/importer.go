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

// Package importer implements the importer, spec §4.4: resolving a list
// of Locations into loaded ConfigData, deduplicated by resource identity
// and tracked so the applier can later check every mandatory location
// was satisfied.
package importer

import (
	"context"

	"github.com/go-spring/log"
	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/internal/confdata"
	"github.com/go-spring/spring-bootconf/bootconf/internal/resolver"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
)

var logTag = log.GetTag("bootconf_importer")

// NotFoundAction mirrors spring.config.on-not-found.
type NotFoundAction int

const (
	ActionFail NotFoundAction = iota
	ActionIgnore
)

// Entry is one loaded (Location, Resource) pair and its decoded data —
// the importer's view of one element of spec §4.4's result mapping.
type Entry struct {
	Location        *location.Location
	Resource        resourceloader.Resource
	ProfileSpecific bool
	Data            loader.ConfigData
}

// Importer carries the dedup state spec §4.4 names, across the whole
// run (every resolve_and_load call on the same Importer shares it).
type Importer struct {
	NotFoundAction NotFoundAction

	loaded            map[string]bool // Resource.ID -> loaded
	loadedLocations   map[string]bool // Location.RawValue -> loaded or optional-empty
	optionalLocations map[string]bool // Location.RawValue -> ever seen optional
}

// New creates an Importer with the given not-found policy.
func New(action NotFoundAction) *Importer {
	return &Importer{
		NotFoundAction:    action,
		loaded:            map[string]bool{},
		loadedLocations:   map[string]bool{},
		optionalLocations: map[string]bool{},
	}
}

// LoadedLocations reports whether loc was loaded (or recorded as an
// optional empty-directory marker) by any resolve_and_load call so far.
func (im *Importer) LoadedLocations(raw string) bool { return im.loadedLocations[raw] }

// OptionalLocations reports whether loc was ever recorded as optional.
func (im *Importer) OptionalLocations(raw string) bool { return im.optionalLocations[raw] }

// ResolveAndLoad implements spec §4.4's resolve_and_load: resolving
// every Location (against profiles, empty for BEFORE_PROFILE_ACTIVATION)
// and loading each newly-seen Resource via the confdata loader.
//
// When profiles is non-empty, both the unprofiled and profile-specific
// candidates are resolved, unprofiled first — producing the base-before-
// profile-file ordering spec scenario S2 requires, since a Location's
// own profile-conditional expansion has no other natural place to live
// once BEFORE_PROFILE_ACTIVATION has already bound the base file.
func (im *Importer) ResolveAndLoad(
	ctx context.Context,
	res *resolver.Resolver,
	registry *loader.Registry,
	locs []*location.Location,
	profiles []string,
) ([]Entry, error) {

	var resources []resourceloader.Resource
	for _, loc := range locs {
		base, err := res.Resolve(ctx, loc)
		if err != nil {
			return nil, err
		}
		resources = append(resources, base...)

		if len(profiles) > 0 {
			specific, err := res.ResolveProfileSpecific(ctx, loc, profiles)
			if err != nil {
				return nil, err
			}
			resources = append(resources, specific...)
		}
	}

	kept := make([]bool, len(resources))
	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]

		if !r.Exists {
			if r.Optional {
				continue
			}
			switch im.NotFoundAction {
			case ActionIgnore:
				continue
			default:
				return nil, bcerrors.New(bcerrors.KindConfigDataLocationNotFound,
					"location %s yielded no resource", r.Reference.Loc.RawValue)
			}
		}

		raw := ""
		if r.Reference.Loc != nil {
			raw = r.Reference.Loc.RawValue
		}
		if r.Optional {
			im.optionalLocations[raw] = true
		}
		if im.loaded[r.ID] {
			im.loadedLocations[raw] = true
			continue
		}

		kept[i] = true
		im.loaded[r.ID] = true
		im.loadedLocations[raw] = true
	}

	var entries []Entry
	for i, r := range resources {
		if !kept[i] {
			continue
		}
		data, err := confdata.Load(registry, r)
		if err != nil {
			return nil, err
		}
		log.Infof(ctx, logTag, "loaded config data from %s", r.ID)
		entries = append(entries, Entry{
			Location:        r.Reference.Loc,
			Resource:        r,
			ProfileSpecific: r.ProfileSpecific(),
			Data:            data,
		})
	}
	return entries, nil
}
