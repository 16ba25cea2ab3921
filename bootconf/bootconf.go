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

// Package bootconf is the public entry point (SPEC_FULL §14): it wires
// the location/resolver/confdata/importer/contributor/processor/
// activation/applier pipeline together into one call,
// ProcessAndApply, mirroring the shape of the teacher's
// gs_conf.AppConfig.Refresh — one call, layered merge, a populated
// result — but built over the immutable contributor tree from spec
// §4.5-§4.8 instead of a flat ordered merge.
package bootconf

import (
	"context"
	"strings"

	"github.com/go-spring/log"
	"github.com/go-spring/spring-bootconf/bootconf/internal/activation"
	"github.com/go-spring/spring-bootconf/bootconf/internal/applier"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/internal/importer"
	"github.com/go-spring/spring-bootconf/bootconf/internal/processor"
	"github.com/go-spring/spring-bootconf/bootconf/internal/resolver"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
	"github.com/go-spring/spring-bootconf/conf"
	"github.com/go-spring/spring-bootconf/environment"
)

var logTag = log.GetTag("bootconf")

// Default search locations, spec §6: applied in order, all optional —
// each segment carries its own "optional:" marker so that an ordinary
// project missing e.g. a ./config/ subdirectory still starts cleanly.
const (
	DefaultClasspathLocations = "optional:classpath:/;optional:classpath:/config/"
	DefaultFileLocations      = "optional:file:./;optional:file:./config/;optional:file:./config/*/"
)

// Well-known input properties, spec §6 "Input properties".
const (
	KeyConfigName               = "spring.config.name"
	KeyConfigLocation           = "spring.config.location"
	KeyConfigAdditionalLocation = "spring.config.additional-location"
	KeyConfigOnNotFound         = "spring.config.on-not-found"
)

// Options configures one ProcessAndApply run.
type Options struct {
	// ResourceLoader backs classpath:/file: resolution; defaults to a
	// resourceloader.FileSystem rooted at the working directory.
	ResourceLoader resourceloader.ResourceLoader
	// Loaders claims the registered file formats; defaults to
	// loader.DefaultRegistry().
	Loaders *loader.Registry
	// InitialProperties seeds an EXISTING contributor ahead of every
	// resolved location — typically command-line overrides — and is
	// where spring.config.name/location/on-not-found are read from. That
	// contributor takes part in placeholder resolution and profile
	// deduction; it is not appended to the environment.
	InitialProperties *conf.MutableProperties
	// AdditionalProfiles supplements profile deduction (spec §4.7).
	AdditionalProfiles []string
	// Platform is the cloud-platform coordinate spec §4.7 Phase 2 would
	// otherwise infer; supplied directly since Go has no managed
	// platform-detection API to call here.
	Platform string
	// Listener receives on_property_source_added / on_set_profiles.
	Listener environment.Listener
}

func (o Options) properties() conf.Properties {
	if o.InitialProperties != nil {
		return o.InitialProperties
	}
	return conf.New()
}

func (o Options) configNames() []string {
	p := o.properties()
	if !p.Has(KeyConfigName) {
		return []string{"application"}
	}
	return splitNames(p.Get(KeyConfigName))
}

func (o Options) notFoundAction() importer.NotFoundAction {
	p := o.properties()
	if strings.EqualFold(p.Get(KeyConfigOnNotFound), "IGNORE") {
		return importer.ActionIgnore
	}
	return importer.ActionFail
}

func (o Options) initialLocations() []*location.Location {
	p := o.properties()

	var raw string
	if p.Has(KeyConfigLocation) {
		raw = p.Get(KeyConfigLocation)
	} else {
		raw = DefaultClasspathLocations + ";" + DefaultFileLocations
	}
	locs := location.Parse(raw)

	if p.Has(KeyConfigAdditionalLocation) {
		locs = append(location.Parse(p.Get(KeyConfigAdditionalLocation)), locs...)
	}
	return locs
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{"application"}
	}
	return out
}

// ProcessAndApply expands opts' initial locations through the three
// activation phases spec §4 describes and appends the resulting
// property sources to env, in order.
func ProcessAndApply(ctx context.Context, env *environment.Environment, opts Options) error {
	if opts.Loaders == nil {
		opts.Loaders = loader.DefaultRegistry()
	}
	if opts.ResourceLoader == nil {
		opts.ResourceLoader = resourceloader.NewFileSystem(".")
	}
	if opts.Listener != nil {
		env.SetListener(opts.Listener)
	}

	names := opts.configNames()
	initialLocations := opts.initialLocations()

	res := resolver.New(resolver.Context{
		ResourceLoader: opts.ResourceLoader,
		Loaders:        opts.Loaders,
		Names:          names,
	})
	imp := importer.New(opts.notFoundAction())

	var rootChildren []*contributor.Contributor
	if opts.InitialProperties != nil {
		rootChildren = append(rootChildren, &contributor.Contributor{
			Kind:       contributor.KindExisting,
			Properties: &loader.PropertySet{Name: "initial", Properties: opts.InitialProperties},
		})
	}
	for _, loc := range initialLocations {
		rootChildren = append(rootChildren, &contributor.Contributor{
			Kind:    contributor.KindInitialImport,
			Location: loc,
			Imports: []*location.Location{loc},
		})
	}
	tree := contributor.Of(rootChildren)

	log.Infof(ctx, logTag, "starting config-data processing, names=%v", names)

	// Phase 1: BEFORE_PROFILE_ACTIVATION, no activation known yet.
	phase1 := &activation.Context{}
	tree, err := processor.Process(ctx, tree, imp, res, opts.Loaders, phase1)
	if err != nil {
		return err
	}

	// Phase 2: platform only (no managed platform-detection source in
	// this port; Platform is supplied directly via Options).
	phase2 := &activation.Context{Platform: opts.Platform}
	tree, err = processor.Process(ctx, tree, imp, res, opts.Loaders, phase2)
	if err != nil {
		return err
	}

	// Phase 3: deduce profiles, then process AFTER_PROFILE_ACTIVATION.
	activeProfiles, defaultProfiles, err := activation.DeduceProfiles(tree, opts.Platform, opts.AdditionalProfiles)
	if err != nil {
		return err
	}
	phase3 := &activation.Context{Platform: opts.Platform, ProfilesKnown: true, Profiles: activeProfiles}
	tree, err = processor.Process(ctx, tree, imp, res, opts.Loaders, phase3)
	if err != nil {
		return err
	}

	return applier.Apply(ctx, tree, phase3,
		environment.Profiles{Active: activeProfiles, Default: defaultProfiles},
		imp, initialLocations, env)
}
