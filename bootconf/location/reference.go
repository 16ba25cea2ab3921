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

package location

import "strings"

// Reference describes one concrete candidate file derived from a
// directory Location, a config name, and a loader extension. It is the
// unit the resolver turns into zero or more Resources.
type Reference struct {
	Loc       *Location
	Directory string // the directory the candidate file would live in
	Name      string // config name, e.g. "application"
	Profile   string // "" if not profile-specific
	Extension string // chosen extension, including leading dot
}

// ProfileSpecific reports whether this reference targets a profile file
// (e.g. "application-dev.yaml").
func (r Reference) ProfileSpecific() bool {
	return r.Profile != ""
}

// Path is the candidate file path this reference names, relative to
// nothing in particular — callers join it onto a resource-loader root.
func (r Reference) Path() string {
	name := r.Name
	if r.Profile != "" {
		name = name + "-" + r.Profile
	}
	return joinDir(r.Directory, name+r.Extension)
}

func joinDir(dir, file string) string {
	if dir == "" {
		return file
	}
	if strings.HasSuffix(dir, "/") {
		return dir + file
	}
	return dir + "/" + file
}

// ExpandDirectory builds the Reference set for a directory Location,
// one Reference per (name × extension) pair, for the given profile
// ("" meaning the base, unprofiled candidate).
//
// References are produced in loader-preference order: spec §4.1
// describes building them by iterating extensions in reverse and
// push-front-ing each onto a deque, so that the first-listed loader
// extension ends up at the front (highest precedence). Iterating
// extensions forward and appending produces the identical order with
// plain slices.
func ExpandDirectory(loc *Location, names []string, extensions []string, profile string) []Reference {
	var out []Reference
	for _, name := range names {
		for _, ext := range extensions {
			out = append(out, Reference{
				Loc:       loc,
				Directory: loc.Body,
				Name:      name,
				Profile:   profile,
				Extension: ext,
			})
		}
	}
	return out
}
