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

package confdata

import (
	"testing"

	"github.com/go-spring/spring-bootconf/bootconf/loader"
	"github.com/go-spring/spring-bootconf/bootconf/location"
	"github.com/go-spring/spring-bootconf/bootconf/resourceloader"
	"github.com/go-spring/stdlib/testing/assert"
)

func TestLoad_EmptyDirectoryMarker(t *testing.T) {
	registry := loader.DefaultRegistry()
	res := resourceloader.Resource{EmptyDirectory: true, Exists: true}

	data, err := Load(registry, res)
	assert.Nil(t, err)
	assert.That(t, data).Equal(loader.Empty)
}

func TestLoad_YAML(t *testing.T) {
	registry := loader.DefaultRegistry()
	res := resourceloader.Resource{
		ID:        "application.yaml",
		Exists:    true,
		Reference: location.Reference{Extension: ".yaml"},
		Read:      func() ([]byte, error) { return []byte("foo: 1\n"), nil },
	}

	data, err := Load(registry, res)
	assert.Nil(t, err)
	assert.That(t, len(data.PropertySets)).Equal(1)
	assert.That(t, data.PropertySets[0].Properties.Get("foo")).Equal("1")
}

func TestLoad_ProfileSpecificOption(t *testing.T) {
	registry := loader.DefaultRegistry()
	res := resourceloader.Resource{
		ID:        "application-dev.yaml",
		Exists:    true,
		Reference: location.Reference{Extension: ".yaml", Profile: "dev"},
		Read:      func() ([]byte, error) { return []byte("foo: 2\n"), nil },
	}

	data, err := Load(registry, res)
	assert.Nil(t, err)
	assert.That(t, data.PropertySets[0].Options.Has(loader.ProfileSpecific)).Equal(true)
}

func TestLoad_NoLoaderForExtension(t *testing.T) {
	registry := loader.DefaultRegistry()
	res := resourceloader.Resource{
		ID:        "application.ini",
		Exists:    true,
		Reference: location.Reference{Extension: ".ini"},
	}

	_, err := Load(registry, res)
	assert.Error(t, err).Matches("no loader registered")
}
