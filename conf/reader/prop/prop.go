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

// Package prop reads Java-style .properties configuration data.
package prop

import (
	"strings"

	"github.com/go-spring/stdlib/errutil"
	"github.com/magiconair/properties"
)

// Read parses .properties bytes into a nested map[string]any, expanding
// dotted keys (e.g. "server.port") into nested maps.
func Read(b []byte) (map[string]any, error) {
	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return nil, errutil.Explain(err, "parse properties error")
	}

	out := map[string]any{}
	for _, key := range p.Keys() {
		val, _ := p.Get(key)
		setNested(out, strings.Split(key, "."), val)
	}
	return out, nil
}

// setNested assigns val at the nested path described by parts within m,
// creating intermediate maps as needed.
func setNested(m map[string]any, parts []string, val string) {
	for i, part := range parts {
		if i == len(parts)-1 {
			m[part] = val
			return
		}
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
}
