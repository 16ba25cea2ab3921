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

// Package bcerrors collects the error kinds spec §7 defines, so every
// other bootconf package can raise and recognise them without import
// cycles back into bootconf itself.
package bcerrors

import (
	"errors"
	"fmt"
)

// Kind tags one of the error categories spec §7 enumerates.
type Kind int

const (
	// KindConfigDataLocationNotFound: a mandatory location yielded no
	// resource and on-not-found=FAIL.
	KindConfigDataLocationNotFound Kind = iota
	// KindConfigDataResourceNotFound: a specific resource referenced by
	// an already-resolved location disappeared (e.g. a glob match).
	KindConfigDataResourceNotFound
	// KindConfigDataLoad: the loader raised an I/O or parse failure.
	KindConfigDataLoad
	// KindInvalidConfigDataProperty: a disallowed key appeared in the
	// wrong kind of document.
	KindInvalidConfigDataProperty
	// KindInactiveConfigDataAccess: binding referenced a property from a
	// contributor that fails its activation predicate.
	KindInactiveConfigDataAccess
	// KindUseLegacyConfigProcessing: the legacy opt-in flag is set.
	KindUseLegacyConfigProcessing
)

func (k Kind) String() string {
	switch k {
	case KindConfigDataLocationNotFound:
		return "ConfigDataLocationNotFound"
	case KindConfigDataResourceNotFound:
		return "ConfigDataResourceNotFound"
	case KindConfigDataLoad:
		return "ConfigDataLoad"
	case KindInvalidConfigDataProperty:
		return "InvalidConfigDataProperty"
	case KindInactiveConfigDataAccess:
		return "InactiveConfigDataAccess"
	case KindUseLegacyConfigProcessing:
		return "UseLegacyConfigProcessing"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every bootconf error kind takes.
// ConfigDataResourceNotFound and ConfigDataLocationNotFound both report
// Kind as distinguishable values, matching spec §7's
// "ConfigDataNotFound — superclass for the above" by sharing this one
// type and letting callers test IsNotFound.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsNotFound reports whether err is one of the two "NotFound" kinds
// (spec §7's ConfigDataNotFound superclass).
func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindConfigDataLocationNotFound || e.Kind == KindConfigDataResourceNotFound
}

// Is reports whether err is a bootconf Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
