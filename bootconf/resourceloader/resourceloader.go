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

// Package resourceloader implements the ResourceLoader capability spec
// §4.2 consults: turning a candidate path or glob into concrete,
// byte-addressable Resources.
package resourceloader

import (
	"github.com/go-spring/spring-bootconf/bootconf/location"
)

// Resource is a byte-addressable configuration source that actually
// exists, or a synthetic empty-directory marker (spec §3).
type Resource struct {
	Reference      location.Reference
	ID             string // identity used for dedup (spec I2) — not the Reference
	Exists         bool
	EmptyDirectory bool
	Optional       bool
	Read           func() ([]byte, error)
}

// ProfileSpecific reports whether this resource was reached via a
// profile-specific reference.
func (r Resource) ProfileSpecific() bool {
	return r.Reference.ProfileSpecific()
}

// ResourceLoader is the external capability spec §1 names: classpath /
// filesystem / URL access and glob expansion, consulted by the location
// resolver.
type ResourceLoader interface {
	// GetResource resolves a single, non-pattern path.
	GetResource(path string) (Resource, error)
	// GetResources resolves a glob pattern to zero or more file Resources.
	GetResources(pattern string) ([]Resource, error)
	// IsDirectory reports whether path names an existing directory.
	IsDirectory(path string) bool
	// Exists reports whether path names an existing resource (file or directory).
	Exists(path string) bool
	// Subdirectories lists the immediate subdirectories of an existing directory.
	Subdirectories(path string) ([]string, error)
}
