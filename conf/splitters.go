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

package conf

import (
	"encoding/json"
	"strings"

	"github.com/go-spring/stdlib/errutil"
)

func init() {
	RegisterSplitter("json", splitJSON)
	RegisterSplitter("split", splitCSV)
}

// splitJSON splits a string holding a JSON array of strings, e.g. `>>json`
// on a value of '["a","b"]'.
func splitJSON(s string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, errutil.Explain(err, "split json %q error", s)
	}
	return out, nil
}

// splitCSV splits a comma-separated string, trimming whitespace around
// each element.
func splitCSV(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out, nil
}
