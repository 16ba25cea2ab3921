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

package contributor

import "github.com/go-spring/spring-bootconf/conf"

// MergeProperties walks the tree pre-order (spec I4's order: later
// nodes override earlier ones) and merges every node passing include
// into one MutableProperties, used to build the "whole tree" binder
// spec §4.5 requires for placeholder resolution during binding.
func MergeProperties(tree *Tree, include func(*Contributor) bool) *conf.MutableProperties {
	out := conf.New()
	tree.Walk(func(c *Contributor) bool {
		if c.Properties != nil && c.Properties.Properties != nil && (include == nil || include(c)) {
			_ = c.Properties.Properties.CopyTo(out)
		}
		return true
	})
	return out
}
