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
	"fmt"
	"reflect"
	"strings"

	"github.com/go-spring/stdlib/errutil"
	"github.com/spf13/cast"
)

// BindParam carries the parsed form of a `value:"${key:=default}>>splitter"`
// struct tag plus the dotted Path accumulated while walking into nested
// structs, used purely for error messages.
type BindParam struct {
	Key      string // property key, e.g. "server.port"
	Def      *string
	HasDef   bool
	Splitter string
	Path     string
}

// BindTag parses a tag of the form "${key:=default}>>splitter" (the
// splitter suffix and the default both optional) into the receiver.
func (param *BindParam) BindTag(tag string, splitter string) error {
	param.Splitter = splitter

	if idx := strings.LastIndex(tag, ">>"); idx >= 0 {
		param.Splitter = tag[idx+2:]
		tag = tag[:idx]
	}

	tag = strings.TrimSpace(tag)
	if !strings.HasPrefix(tag, "${") || !strings.HasSuffix(tag, "}") {
		return errutil.Explain(nil, "invalid tag %q, should be ${key:=def}", tag)
	}
	body := tag[2 : len(tag)-1]

	if idx := strings.Index(body, ":="); idx >= 0 {
		param.Key = strings.TrimSpace(body[:idx])
		def := body[idx+2:]
		param.Def = &def
		param.HasDef = true
	} else {
		param.Key = strings.TrimSpace(body)
	}
	return nil
}

// subKey returns the fully-qualified property key for a nested field,
// joining the parent key with the field's own key (if any).
func (param BindParam) subKey(field string) string {
	if param.Key == "" || param.Key == "ROOT" {
		return field
	}
	return param.Key + "." + field
}

// BindValue binds the property identified by param into v (which must be
// addressable / settable), recursing into structs, slices, and maps.
func BindValue(p Properties, v reflect.Value, t reflect.Type, param BindParam, stack []string) error {
	if fn, ok := converters[t]; ok {
		return bindWithConverter(p, v, param, fn)
	}

	switch t.Kind() {
	case reflect.Struct:
		return bindStruct(p, v, t, param, stack)
	case reflect.Slice:
		return bindSlice(p, v, t, param, stack)
	case reflect.Map:
		return bindMap(p, v, t, param, stack)
	case reflect.Ptr:
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return BindValue(p, v.Elem(), t.Elem(), param, stack)
	default:
		return bindPrimitive(p, v, t, param)
	}
}

func bindWithConverter(p Properties, v reflect.Value, param BindParam, fn any) error {
	s, err := resolveParamValue(p, param)
	if err != nil {
		return err
	}
	fv := reflect.ValueOf(fn)
	out := fv.Call([]reflect.Value{reflect.ValueOf(s)})
	if !out[1].IsNil() {
		return errutil.Explain(out[1].Interface().(error), "bind %s error", param.Path)
	}
	v.Set(out[0])
	return nil
}

// resolveParamValue returns the raw string value for param.Key, falling
// back to its default (itself placeholder-resolved) when the key is
// absent, or erroring when neither is available.
func resolveParamValue(p Properties, param BindParam) (string, error) {
	if p.Has(param.Key) {
		return p.Resolve(p.Get(param.Key))
	}
	if param.HasDef {
		return p.Resolve(*param.Def)
	}
	return "", errutil.Explain(nil, "property %q not exist, bind path %s", param.Key, param.Path)
}

func bindPrimitive(p Properties, v reflect.Value, t reflect.Type, param BindParam) error {
	s, err := resolveParamValue(p, param)
	if err != nil {
		return err
	}
	return setPrimitive(v, t, s)
}

func setPrimitive(v reflect.Value, t reflect.Type, s string) error {
	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return errutil.Explain(err, "bind bool %q error", s)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(s)
		if err != nil {
			return errutil.Explain(err, "bind int %q error", s)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(s)
		if err != nil {
			return errutil.Explain(err, "bind uint %q error", s)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return errutil.Explain(err, "bind float %q error", s)
		}
		v.SetFloat(f)
	default:
		return errutil.Explain(nil, "unsupported bind type %s", t)
	}
	return nil
}

func bindStruct(p Properties, v reflect.Value, t reflect.Type, param BindParam, stack []string) error {
	for i := range t.NumField() {
		ft := t.Field(i)
		if !ft.IsExported() {
			continue
		}
		fv := v.Field(i)

		tag, ok := ft.Tag.Lookup("value")
		var fieldParam BindParam
		if ok {
			if err := fieldParam.BindTag(tag, ""); err != nil {
				return errutil.Explain(err, "bind tag error in field %s", ft.Name)
			}
		} else {
			fieldParam.Key = param.subKey(lowerFirst(ft.Name))
		}
		fieldParam.Path = param.Path + "." + ft.Name

		if err := BindValue(p, fv, ft.Type, fieldParam, stack); err != nil {
			return err
		}

		if expr, ok := ft.Tag.Lookup("expr"); ok {
			if err := validateExpr(expr, fv.Interface()); err != nil {
				return errutil.Explain(err, "validate field %s error", fieldParam.Path)
			}
		}
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func bindSlice(p Properties, v reflect.Value, t reflect.Type, param BindParam, stack []string) error {
	if param.Splitter != "" {
		s, err := resolveParamValue(p, param)
		if err != nil {
			return err
		}
		fn, ok := splitters[param.Splitter]
		if !ok {
			return errutil.Explain(nil, "splitter %q not registered", param.Splitter)
		}
		parts, err := fn(s)
		if err != nil {
			return errutil.Explain(err, "split %q error", param.Path)
		}
		out := reflect.MakeSlice(t, len(parts), len(parts))
		for i, s := range parts {
			if err = setOrBindElement(p, out.Index(i), t.Elem(), s, param, i, stack); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	}

	if !p.Has(param.Key) {
		keys, err := p.SubKeys(param.Key)
		if err != nil || len(keys) == 0 {
			if param.HasDef {
				if *param.Def == "" {
					v.Set(reflect.MakeSlice(t, 0, 0))
					return nil
				}
				return bindSliceFromCSV(v, t, *param.Def)
			}
			v.Set(reflect.MakeSlice(t, 0, 0))
			return nil
		}
	}

	n := 0
	for {
		if !p.Has(fmt.Sprintf("%s[%d]", param.Key, n)) {
			break
		}
		n++
	}
	if n == 0 {
		s := p.Get(param.Key, "")
		if s != "" {
			return bindSliceFromCSV(v, t, s)
		}
		v.Set(reflect.MakeSlice(t, 0, 0))
		return nil
	}

	out := reflect.MakeSlice(t, n, n)
	for i := range n {
		elemParam := BindParam{Key: fmt.Sprintf("%s[%d]", param.Key, i), Path: fmt.Sprintf("%s[%d]", param.Path, i)}
		if err := BindValue(p, out.Index(i), t.Elem(), elemParam, stack); err != nil {
			return err
		}
	}
	v.Set(out)
	return nil
}

func setOrBindElement(p Properties, ev reflect.Value, et reflect.Type, s string, param BindParam, i int, stack []string) error {
	if et.Kind() == reflect.Struct || et.Kind() == reflect.Slice || et.Kind() == reflect.Map {
		return errutil.Explain(nil, "splitter cannot produce element type %s at %s[%d]", et, param.Path, i)
	}
	return setPrimitive(ev, et, s)
}

func bindSliceFromCSV(v reflect.Value, t reflect.Type, s string) error {
	parts := strings.Split(s, ",")
	out := reflect.MakeSlice(t, len(parts), len(parts))
	for i, p := range parts {
		if err := setPrimitive(out.Index(i), t.Elem(), strings.TrimSpace(p)); err != nil {
			return err
		}
	}
	v.Set(out)
	return nil
}

func bindMap(p Properties, v reflect.Value, t reflect.Type, param BindParam, stack []string) error {
	sub, err := p.SubMap(param.Key)
	if err != nil || len(sub) == 0 {
		v.Set(reflect.MakeMap(t))
		return nil
	}

	keys, err := p.SubKeys(param.Key)
	if err != nil {
		return errutil.Explain(err, "sub keys of %s error", param.Key)
	}

	out := reflect.MakeMap(t)
	for _, k := range keys {
		elemParam := BindParam{Key: param.Key + "." + k, Path: param.Path + "." + k}
		ev := reflect.New(t.Elem()).Elem()
		if err = BindValue(p, ev, t.Elem(), elemParam, stack); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
	}
	v.Set(out)
	return nil
}
