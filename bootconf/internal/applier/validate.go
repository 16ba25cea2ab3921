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

package applier

import (
	"github.com/go-spring/spring-bootconf/bootconf/bcerrors"
	"github.com/go-spring/spring-bootconf/bootconf/internal/activation"
	"github.com/go-spring/spring-bootconf/bootconf/internal/contributor"
	"github.com/go-spring/spring-bootconf/bootconf/loader"
)

// profileDeductionKeys are disallowed inside a profile-specific document
// (spec §4.8 "Validation" example: "spring.profiles.active inside a
// profile-specific document is an error").
var profileDeductionKeys = []string{
	activation.KeyProfilesActive,
	activation.KeyProfilesDefault,
}

func validate(tree *contributor.Tree) error {
	var walkErr error
	tree.Walk(func(c *contributor.Contributor) bool {
		if c.Properties == nil || c.Properties.Properties == nil {
			return true
		}
		if !c.Properties.Options.Has(loader.ProfileSpecific) {
			return true
		}
		for _, key := range profileDeductionKeys {
			if c.Properties.Properties.Has(key) {
				walkErr = bcerrors.New(bcerrors.KindInvalidConfigDataProperty,
					"%s is not allowed in profile-specific document %s", key, c.Properties.Name)
				return false
			}
		}
		return true
	})
	return walkErr
}
