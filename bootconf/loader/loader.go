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

// Package loader implements the Loader capability spec §1 and §4.3
// consult: decoding a byte resource into an ordered list of named
// property sets.
package loader

import "github.com/go-spring/spring-bootconf/conf"

// Options is the per-property-set bitmask spec §3 describes.
type Options uint8

const (
	// ProfileSpecific marks a property set loaded through a Reference
	// that carried a profile (e.g. application-dev.yaml). A document
	// gated only by an on-profile predicate does not carry it.
	ProfileSpecific Options = 1 << iota
	// IgnoreImports excludes a property set from import scanning.
	IgnoreImports
	// IgnoreProfiles excludes a property set from profile deduction (spec I5).
	IgnoreProfiles
)

func (o Options) Has(flag Options) bool { return o&flag != 0 }

// PropertySet is one named, option-tagged property document — a Loader
// may emit several from one resource (spec §3, multi-document YAML).
type PropertySet struct {
	Name       string
	Properties *conf.MutableProperties
	Options    Options
}

// ConfigData is a Loader's output: one or more property sets.
type ConfigData struct {
	PropertySets []PropertySet
}

// Empty is the constant empty ConfigData returned for an
// empty-directory marker resource (spec §4.3).
var Empty = ConfigData{}

// Loader decodes raw bytes into one or more property sets. name is the
// resource's display name, used as each property set's origin.
type Loader interface {
	// Extensions lists the file extensions (including the leading dot)
	// this Loader claims, in the order used to break ties at Reference
	// construction time.
	Extensions() []string
	// Load decodes b into zero or more property sets.
	Load(name string, b []byte) (ConfigData, error)
}

// Registry is an ordered collection of Loaders, consulted by extension.
// Insertion order is preserved and is the order of precedence spec
// §4.1 describes ("the first loader in the loader list has the highest
// precedence").
type Registry struct {
	loaders []Loader
}

// NewRegistry builds a Registry from loaders in precedence order.
func NewRegistry(loaders ...Loader) *Registry {
	return &Registry{loaders: loaders}
}

// Extensions returns every extension claimed by the registry, in
// loader-then-extension order — the order directory expansion (spec
// §4.1) should iterate.
func (r *Registry) Extensions() []string {
	var out []string
	for _, l := range r.loaders {
		out = append(out, l.Extensions()...)
	}
	return out
}

// ForExtension returns the Loader claiming ext (nil if none), used when
// a file Location names a single file rather than a directory.
func (r *Registry) ForExtension(ext string) Loader {
	for _, l := range r.loaders {
		for _, e := range l.Extensions() {
			if e == ext {
				return l
			}
		}
	}
	return nil
}
