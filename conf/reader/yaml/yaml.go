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

// Package yaml reads YAML-encoded configuration data.
package yaml

import (
	"github.com/go-spring/stdlib/errutil"
	"gopkg.in/yaml.v2"
)

// Read parses YAML bytes into a nested map[string]any. Only the first
// document of a multi-document stream is returned; callers that need
// every document should use ReadAll.
func Read(b []byte) (map[string]any, error) {
	docs, err := ReadAll(b)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return map[string]any{}, nil
	}
	return docs[0], nil
}

// ReadAll parses every document in a (possibly multi-document) YAML
// stream into a slice of nested map[string]any, one per "---"-separated
// document.
func ReadAll(b []byte) ([]map[string]any, error) {
	dec := yaml.NewDecoder(newBytesReader(b))

	var docs []map[string]any
	for {
		var raw map[interface{}]interface{}
		err := dec.Decode(&raw)
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, errutil.Explain(err, "parse yaml error")
		}
		docs = append(docs, normalize(raw).(map[string]any))
	}
	return docs, nil
}

// normalize converts the map[interface{}]interface{} trees that yaml.v2
// produces into map[string]any trees, recursively.
func normalize(v any) any {
	switch vv := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]any, len(vv))
		for k, val := range vv {
			m[toString(k)] = normalize(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]any, len(vv))
		for k, val := range vv {
			m[k] = normalize(val)
		}
		return m
	case []interface{}:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmtSprint(v)
}
