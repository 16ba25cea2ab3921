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

// Package confdata implements the config-data loader, spec §4.3: turning
// a resolved Resource into a ConfigData by delegating to the Loader
// recorded on its Reference.
package confdata

import (
	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
)

// Load implements load(ctx, Resource) -> ConfigData? from spec §4.3.
// registry supplies the Loader keyed by the extension the resolver
// recorded on the resource's Reference.
func Load(registry *loader.Registry, res resourceloader.Resource) (loader.ConfigData, error) {
	if res.EmptyDirectory || !res.Exists {
		return loader.Empty, nil
	}

	ext := res.Reference.Extension
	l := registry.ForExtension(ext)
	if l == nil {
		return loader.ConfigData{}, bcerrors.New(bcerrors.KindConfigDataLoad,
			"no loader registered for extension %q (resource %s)", ext, res.ID)
	}

	b, err := res.Read()
	if err != nil {
		return loader.ConfigData{}, bcerrors.Wrap(bcerrors.KindConfigDataLoad, err,
			"read resource %s failed", res.ID)
	}

	data, err := l.Load(res.ID, b)
	if err != nil {
		return loader.ConfigData{}, bcerrors.Wrap(bcerrors.KindConfigDataLoad, err,
			"load resource %s failed", res.ID)
	}

	opts := loader.Options(0)
	if res.ProfileSpecific() {
		opts = loader.ProfileSpecific
	}
	for i := range data.PropertySets {
		data.PropertySets[i].Options |= opts
	}
	return data, nil
}
