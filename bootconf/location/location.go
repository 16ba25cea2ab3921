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

// Package location parses the location strings an operator supplies
// (spring.config.location, spring.config.import, and friends) into
// normalised Location values, and expands a directory Location into the
// set of candidate References a resolver should ask about.
package location

import (
	"regexp"
	"strings"
)

var prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9*]*:`)

// Location is a user-supplied configuration address, already split out
// of any comma/semicolon list and stripped of its own "optional:" marker.
type Location struct {
	RawValue string // the value as given, including "optional:" and prefix
	Optional bool
	Prefix   string // scheme without trailing ':', "" if none
	Body     string // RawValue with "optional:" and "prefix:" removed
}

// Equal compares two locations by normalised raw value, per spec §3.
func (l *Location) Equal(o *Location) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.RawValue == o.RawValue
}

// IsDirectory reports whether the location names a directory (trailing
// '/' or OS separator).
func (l *Location) IsDirectory() bool {
	return strings.HasSuffix(l.Body, "/") || strings.HasSuffix(l.Body, "\\")
}

// IsGlob reports whether the location contains a glob wildcard.
func (l *Location) IsGlob() bool {
	return strings.Contains(l.Body, "*")
}

// IsAbsolute reports whether the location is an absolute path or carries
// a scheme prefix of its own.
func (l *Location) IsAbsolute() bool {
	return strings.HasPrefix(l.Body, "/") || l.Prefix != "" || prefixPattern.MatchString(l.Body)
}

// ExtensionHint returns the extension forced by a "foo[.yaml]" suffix, if
// the location uses that syntax, and the body with the hint stripped.
func (l *Location) ExtensionHint() (ext string, body string, ok bool) {
	if !strings.HasSuffix(l.Body, "]") {
		return "", l.Body, false
	}
	start := strings.LastIndex(l.Body, "[.")
	if start < 0 {
		return "", l.Body, false
	}
	ext = l.Body[start+1 : len(l.Body)-1]
	body = l.Body[:start]
	return ext, body, true
}

// Parse splits raw on ';' and unescaped ',' and parses each piece into a
// Location. Each piece may carry its own "optional:" marker and its own
// scheme prefix, per the grammar in spec §6:
//
//	loc  := ["optional:"] [prefix ":"] body
//	list := loc (";" loc)*
func Parse(raw string) []*Location {
	var out []*Location
	for _, piece := range splitList(raw) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, parseOne(piece))
	}
	return out
}

func parseOne(raw string) *Location {
	l := &Location{RawValue: raw}

	body := raw
	if rest, ok := strings.CutPrefix(body, "optional:"); ok {
		l.Optional = true
		body = rest
	}

	if m := prefixPattern.FindString(body); m != "" {
		l.Prefix = strings.TrimSuffix(m, ":")
		body = body[len(m):]
	}

	l.Body = body
	return l
}

// splitList splits on ';' and on ',' that is not preceded by a backslash,
// removing the escaping backslash from any escaped comma in the output.
func splitList(raw string) []string {
	var (
		out   []string
		cur   strings.Builder
		runes = []rune(raw)
	)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < len(runes) && runes[i+1] == ',':
			cur.WriteRune(',')
			i++
		case c == ';' || c == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	out = append(out, cur.String())
	return out
}
