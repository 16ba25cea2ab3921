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
	"github.com/expr-lang/expr"
	"github.com/go-spring/stdlib/errutil"
)

// validateFuncs holds user-registered custom validators, keyed by name
// and invoked from inside an `expr` tag as ordinary function calls.
var validateFuncs = map[string]any{}

// RegisterValidateFunc registers a named validator usable from an `expr`
// struct tag, e.g. RegisterValidateFunc("futureDate", ...) enables
// `expr:"futureDate($)"`.
func RegisterValidateFunc(name string, fn any) {
	validateFuncs[name] = fn
}

// validateExpr compiles and evaluates an `expr` tag against the bound
// value, which is made available to the expression as `$`.
func validateExpr(exprStr string, value any) error {
	env := map[string]any{"$": value}
	for name, fn := range validateFuncs {
		env[name] = fn
	}

	program, err := expr.Compile(exprStr, expr.Env(env))
	if err != nil {
		return errutil.Explain(err, "compile expr %q error", exprStr)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return errutil.Explain(err, "run expr %q error", exprStr)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return errutil.Explain(nil, "expr %q did not evaluate to bool", exprStr)
	}
	if !ok {
		return errutil.Explain(nil, "value %v failed validation %q", value, exprStr)
	}
	return nil
}
