package envconfig

import (
	"encoding"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Reader looks up the raw value for a key. The second return reports
// whether the key is present.
type Reader func(key string) (string, bool, error)

// EnvironmentReader reads values from the process environment.
var EnvironmentReader Reader = func(key string) (string, bool, error) {
	value, ok := os.LookupEnv(key)
	return value, ok, nil
}

// Process populates fields of spec from environment variables named
// PREFIX_FIELD, recursing into nested structs. Field names may be
// overridden with an `envconfig` tag; a tag of "-" skips the field.
func Process(prefix string, spec any) error {
	return ProcessWithReader(prefix, spec, EnvironmentReader)
}

func ProcessWithReader(prefix string, spec any, reader Reader) error {
	v := reflect.ValueOf(spec)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("spec must be a struct pointer")
	}
	return processStruct(prefix, v.Elem(), reader)
}

func processStruct(prefix string, v reflect.Value, reader Reader) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("envconfig")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToUpper(field.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "_" + name
		}
		if field.Anonymous {
			key = prefix
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			fv = fv.Elem()
		}

		if fv.Kind() == reflect.Struct && !isUnmarshaler(fv) {
			if err := processStruct(key, fv, reader); err != nil {
				return err
			}
			continue
		}

		value, ok, err := reader(key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := setValue(fv, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func isUnmarshaler(v reflect.Value) bool {
	if !v.CanAddr() {
		return false
	}
	_, ok := v.Addr().Interface().(encoding.TextUnmarshaler)
	return ok
}

func setValue(v reflect.Value, value string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(value))
		}
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(v.Type(), 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := setValue(elem, part); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		v.Set(slice)
	case reflect.Map:
		m := reflect.MakeMap(v.Type())
		for _, pair := range strings.Split(value, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				return fmt.Errorf("invalid map entry: '%s'", pair)
			}
			mk := reflect.New(v.Type().Key()).Elem()
			if err := setValue(mk, strings.TrimSpace(kv[0])); err != nil {
				return err
			}
			mv := reflect.New(v.Type().Elem()).Elem()
			if err := setValue(mv, strings.TrimSpace(kv[1])); err != nil {
				return err
			}
			m.SetMapIndex(mk, mv)
		}
		v.Set(m)
	default:
		return fmt.Errorf("unsupported type: %s", v.Type())
	}
	return nil
}
