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

// Package resolver implements the location resolver, spec §4.2: it
// turns a Location into zero or more concrete Resources, applying
// skippable semantics and synthesising empty-directory markers.
package resolver

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-spring/log"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
)

var logTag = log.GetTag("bootconf_resolver")

// Context pins a resolver to the place in the tree it is resolving for:
// ParentDir is the directory relative locations are joined onto (spec
// §4.2 step 1, "walking up from ctx.parent").
type Context struct {
	ResourceLoader resourceloader.ResourceLoader
	Loaders        *loader.Registry
	Names          []string
	ParentDir      string
}

// Resolver resolves Locations into Resources for one Context.
type Resolver struct {
	ctx Context
}

// New creates a Resolver pinned to ctx.
func New(ctx Context) *Resolver {
	if len(ctx.Names) == 0 {
		ctx.Names = []string{"application"}
	}
	return &Resolver{ctx: ctx}
}

// Resolve implements spec §4.2's resolve(ctx, Location) -> [Resource],
// with no profile restriction (base, unprofiled candidates only).
func (r *Resolver) Resolve(ctx context.Context, loc *location.Location) ([]resourceloader.Resource, error) {
	return r.resolve(ctx, loc, nil)
}

// ResolveProfileSpecific implements resolve_profile_specific(ctx,
// Location, profiles) -> [Resource]: for a directory Location only
// profile-suffixed candidates are produced, one set per profile in
// profiles. A file Location resolves to the file itself, exactly as
// Resolve does; no profile-suffixed variant of it is looked up.
func (r *Resolver) ResolveProfileSpecific(ctx context.Context, loc *location.Location, profiles []string) ([]resourceloader.Resource, error) {
	return r.resolve(ctx, loc, profiles)
}

func (r *Resolver) resolve(ctx context.Context, loc *location.Location, profiles []string) ([]resourceloader.Resource, error) {
	path := r.resourceLocationString(loc)

	if loc.IsDirectory() {
		return r.resolveDirectory(ctx, loc, path, profiles)
	}
	return r.resolveFile(ctx, loc, path)
}

// resourceLocationString builds the path string to hand the
// ResourceLoader, joining a relative location onto ParentDir.
func (r *Resolver) resourceLocationString(loc *location.Location) string {
	return r.scopedPath(loc, loc.Body)
}

// scopedPath joins body (either loc.Body itself, or a directory-expanded
// Reference's Path()) onto ParentDir when loc is relative, then
// reattaches loc's scheme prefix.
func (r *Resolver) scopedPath(loc *location.Location, body string) string {
	if !loc.IsAbsolute() && r.ctx.ParentDir != "" {
		body = joinPath(r.ctx.ParentDir, body)
	}
	if loc.Prefix == "" {
		return body
	}
	return loc.Prefix + ":" + body
}

// fileExtension derives the Reference.Extension a single-file Location
// resolves under: an explicit "[.ext]" hint wins, otherwise it is the
// path's own suffix.
func fileExtension(loc *location.Location) string {
	if ext, _, ok := loc.ExtensionHint(); ok {
		return "." + strings.TrimPrefix(ext, ".")
	}
	return filepath.Ext(loc.Body)
}

func joinPath(dir, rel string) string {
	if dir == "" {
		return rel
	}
	if strings.HasSuffix(dir, "/") {
		return dir + rel
	}
	return dir + "/" + rel
}

// resolveFile treats loc as naming a single file, selecting the loader
// whose extension matches (an explicit "[.ext]" hint disables further
// extension matching).
func (r *Resolver) resolveFile(ctx context.Context, loc *location.Location, path string) ([]resourceloader.Resource, error) {
	res, err := r.ctx.ResourceLoader.GetResource(path)
	if err != nil {
		return nil, err
	}
	res.Reference = location.Reference{Loc: loc, Extension: fileExtension(loc)}
	res.Optional = loc.Optional

	if !res.Exists {
		if skippable(loc, res) {
			log.Tracef(ctx, logTag, "skipping missing optional resource %s", path)
			return nil, nil
		}
		return []resourceloader.Resource{res}, nil
	}
	return []resourceloader.Resource{res}, nil
}

// resolveDirectory expands loc into the reference set (spec §4.1) and
// resolves each reference, falling back to an EMPTY_LOCATION marker
// when nothing was found (spec §4.2 step 5).
func (r *Resolver) resolveDirectory(ctx context.Context, loc *location.Location, dirPath string, profiles []string) ([]resourceloader.Resource, error) {
	extensions := r.ctx.Loaders.Extensions()

	var refs []location.Reference
	if len(profiles) == 0 {
		refs = location.ExpandDirectory(loc, r.ctx.Names, extensions, "")
	} else {
		for _, p := range profiles {
			refs = append(refs, location.ExpandDirectory(loc, r.ctx.Names, extensions, p)...)
		}
	}

	var found []resourceloader.Resource
	for _, ref := range refs {
		path := r.scopedPath(loc, ref.Path())

		// Pattern references use get_resources (spec §4.2 step 3): the
		// reference's own path still carries loc's "*" segment (e.g.
		// "./config/*/application.yaml"), which GetResources expands via
		// glob. A non-pattern reference names one concrete file.
		if loc.IsGlob() {
			matches, err := r.ctx.ResourceLoader.GetResources(path)
			if err != nil {
				return nil, err
			}
			for _, res := range matches {
				res.Reference = ref
				res.Optional = loc.Optional
				found = append(found, res)
			}
			continue
		}

		res, err := r.ctx.ResourceLoader.GetResource(path)
		if err != nil {
			return nil, err
		}
		if !res.Exists {
			continue
		}
		res.Reference = ref
		res.Optional = loc.Optional
		found = append(found, res)
	}

	if len(found) > 0 {
		return found, nil
	}

	return r.emptyDirectoryMarkers(ctx, loc, dirPath)
}

// emptyDirectoryMarkers synthesises the markers spec §4.2 step 5
// describes when a directory location yields no file references.
func (r *Resolver) emptyDirectoryMarkers(ctx context.Context, loc *location.Location, dirPath string) ([]resourceloader.Resource, error) {
	// A glob location's own body still contains its "*" segment (e.g.
	// "./config/*/"), which Exists/Subdirectories cannot stat directly;
	// check and list against the concrete directory the wildcard sits
	// under instead (e.g. "./config/").
	existsCheckPath := dirPath
	if loc.IsGlob() {
		existsCheckPath = r.scopedPath(loc, globBaseDir(loc.Body))
	}

	exists := r.ctx.ResourceLoader.Exists(existsCheckPath)
	if !exists {
		if loc.Optional {
			return nil, nil
		}
		return []resourceloader.Resource{{
			ID:        dirPath,
			Exists:    false,
			Optional:  loc.Optional,
			Reference: location.Reference{Loc: loc},
		}}, nil
	}

	if loc.IsGlob() {
		subdirs, err := r.ctx.ResourceLoader.Subdirectories(existsCheckPath)
		if err != nil {
			return nil, err
		}
		out := make([]resourceloader.Resource, 0, len(subdirs))
		for _, s := range subdirs {
			out = append(out, resourceloader.Resource{
				ID:             s,
				Exists:         true,
				EmptyDirectory: true,
				Optional:       loc.Optional,
				Reference:      location.Reference{Loc: loc},
			})
		}
		return out, nil
	}

	return []resourceloader.Resource{{
		ID:             dirPath,
		Exists:         true,
		EmptyDirectory: true,
		Optional:       loc.Optional,
		Reference:      location.Reference{Loc: loc},
	}}, nil
}

// globBaseDir returns the portion of a location body up to (but
// excluding) its first wildcard path segment — the concrete directory
// whose existence and subdirectories a glob location is checked
// against, e.g. "config/*/" -> "config/".
func globBaseDir(body string) string {
	idx := strings.IndexByte(body, '*')
	if idx < 0 {
		return body
	}
	base := body[:idx]
	if i := strings.LastIndex(base, "/"); i >= 0 {
		return base[:i+1]
	}
	return ""
}

// skippable reports whether a missing resource may be silently dropped:
// spec §4.2 step 4 — optional or profile-specific locations are
// skippable, mandatory non-profile locations are not (the importer
// decides whether that is fatal).
func skippable(loc *location.Location, res resourceloader.Resource) bool {
	return loc.Optional || res.ProfileSpecific()
}
