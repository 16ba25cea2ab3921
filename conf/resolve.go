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
	"strings"

	"github.com/go-spring/stdlib/errutil"
)

// PlaceholderNotFoundError is returned (wrapped) by Resolve when a
// ${key} placeholder has no default and key is absent from the
// properties. Callers that need to distinguish "truly absent" from
// "present elsewhere but currently inactive" can errors.As for it.
type PlaceholderNotFoundError struct {
	Key string
}

func (e *PlaceholderNotFoundError) Error() string {
	return "property \"" + e.Key + "\" not exist"
}

// resolveString expands every ${key:=default} placeholder found in s,
// recursively resolving placeholders that appear inside a default value
// (e.g. ${DB_HOST:=localhost:${DB_PORT:=3306}}) before substitution.
func resolveString(p Properties, s string) (string, error) {
	return resolveDepth(p, s, 0)
}

const maxResolveDepth = 32

func resolveDepth(p Properties, s string, depth int) (string, error) {
	if depth > maxResolveDepth {
		return "", errutil.Explain(nil, "resolve string %q error: placeholder nesting too deep", s)
	}

	var b strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			b.WriteString(s[i:])
			break
		}
		start += i
		b.WriteString(s[i:start])

		end, ok := matchBrace(s, start+2)
		if !ok {
			return "", errutil.Explain(nil, "resolve string %q error: unmatched '${'", s)
		}

		inner := s[start+2 : end]
		val, err := resolvePlaceholder(p, inner, depth)
		if err != nil {
			return "", err
		}
		b.WriteString(val)
		i = end + 1
	}
	return b.String(), nil
}

// matchBrace finds the index of the '}' that closes the '${' whose body
// starts at from, accounting for nested "${" / "}" pairs.
func matchBrace(s string, from int) (int, bool) {
	depth := 1
	i := from
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "${"):
			depth++
			i += 2
		case s[i] == '}':
			depth--
			if depth == 0 {
				return i, true
			}
			i++
		default:
			i++
		}
	}
	return 0, false
}

// resolvePlaceholder resolves the body of one ${...} expression, which
// has the form "key" or "key:=default".
func resolvePlaceholder(p Properties, body string, depth int) (string, error) {
	key := body
	var def *string
	if idx := strings.Index(body, ":="); idx >= 0 {
		key = body[:idx]
		d := body[idx+2:]
		def = &d
	}
	key = strings.TrimSpace(key)

	if p.Has(key) {
		v := p.Get(key)
		if strings.Contains(v, "${") {
			return resolveDepth(p, v, depth+1)
		}
		return v, nil
	}

	if def == nil {
		return "", errutil.Explain(&PlaceholderNotFoundError{Key: key}, "property %q not exist", key)
	}
	return resolveDepth(p, *def, depth+1)
}
