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

// Package toml reads TOML-encoded configuration data.
package toml

import (
	"github.com/go-spring/stdlib/errutil"
	"github.com/pelletier/go-toml"
)

// Read parses TOML bytes into a nested map[string]any.
func Read(b []byte) (map[string]any, error) {
	tree, err := toml.LoadBytes(b)
	if err != nil {
		return nil, errutil.Explain(err, "parse toml error")
	}
	return tree.ToMap(), nil
}
