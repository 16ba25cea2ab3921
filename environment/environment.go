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

// Package environment models the target the applier writes into: an
// ordered property-source list plus the active and default profile
// sets, the way the teacher models conf.Properties / MutableProperties
// but representing the whole process environment rather than one
// source (SPEC_FULL §10).
package environment

import (
	"fmt"

	"github.com/go-spring/spring-bootconf/conf"
)

// DefaultPropertiesSourceName is the well-known low-priority source
// spec §4.8 moves to the end of the list before the final apply.
const DefaultPropertiesSourceName = "defaultProperties"

// PropertySource is one entry of the environment's ordered list.
type PropertySource struct {
	Name       string
	Properties *conf.MutableProperties
}

// SourceName builds the stable observable name spec §6 requires:
// "Config resource '<resource>' via location '<location>'".
func SourceName(resource, location string) string {
	return fmt.Sprintf("Config resource '%s' via location '%s'", resource, location)
}

// Listener receives the two events spec §6 names
// ("Emitted events"): on_property_source_added and on_set_profiles.
type Listener interface {
	OnPropertySourceAdded(source PropertySource, location, resource string)
	OnSetProfiles(profiles Profiles)
}

// Profiles is the final (active, default) profile pair the applier sets.
type Profiles struct {
	Active  []string
	Default []string
}

// Environment is the host-owned target the applier mutates exactly once,
// at the end of process_and_apply (spec §5 "Shared resources").
type Environment struct {
	sources  []PropertySource
	profiles Profiles
	listener Listener
}

// New creates an empty Environment.
func New() *Environment {
	return &Environment{}
}

// SetListener installs the listener notified of property-source
// additions and profile changes.
func (e *Environment) SetListener(l Listener) { e.listener = l }

// AddLast appends source to the end of the property-source list — the
// sole mutation spec §4.8's applier performs per bound contributor.
func (e *Environment) AddLast(source PropertySource, location, resource string) {
	e.sources = append(e.sources, source)
	if e.listener != nil {
		e.listener.OnPropertySourceAdded(source, location, resource)
	}
}

// PropertySources returns the ordered property-source list, the output
// spec §6 names.
func (e *Environment) PropertySources() []PropertySource {
	return append([]PropertySource(nil), e.sources...)
}

// MoveDefaultPropertiesToEnd relocates the well-known "defaultProperties"
// source (if present) to the very end of the list, per spec §4.8's final
// applier step.
func (e *Environment) MoveDefaultPropertiesToEnd() {
	idx := -1
	for i, s := range e.sources {
		if s.Name == DefaultPropertiesSourceName {
			idx = i
			break
		}
	}
	if idx < 0 || idx == len(e.sources)-1 {
		return
	}
	s := e.sources[idx]
	e.sources = append(append(e.sources[:idx:idx], e.sources[idx+1:]...), s)
}

// SetProfiles records the final active/default profiles and notifies
// the listener (spec §6's on_set_profiles).
func (e *Environment) SetProfiles(p Profiles) {
	e.profiles = p
	if e.listener != nil {
		e.listener.OnSetProfiles(p)
	}
}

// ActiveProfiles returns the profiles set by the last SetProfiles call.
func (e *Environment) ActiveProfiles() []string { return e.profiles.Active }

// DefaultProfiles returns the default profiles set by the last
// SetProfiles call.
func (e *Environment) DefaultProfiles() []string { return e.profiles.Default }

// Merged flattens every property source into one MutableProperties,
// later sources overriding earlier ones — a convenience view for
// callers that just want to Bind against the final configuration.
func (e *Environment) Merged() *conf.MutableProperties {
	out := conf.New()
	for _, s := range e.sources {
		if s.Properties != nil {
			_ = s.Properties.CopyTo(out)
		}
	}
	return out
}
