package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// dotEnvPath is read before env tags are processed. Variables already present in
// the process environment win over the file.
var dotEnvPath = ".env"

func loadDotEnv() error {
	err := godotenv.Load(dotEnvPath)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// lookupFunc resolves one environment variable.
type lookupFunc func(key string) (string, bool)

// applyEnv copies every tagged variable found by lookup into the matching field of
// the struct pointed to by target. All bad values are reported together.
func applyEnv(target interface{}, lookup lookupFunc) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("env target must be a struct pointer, got %T", target)
	}
	var errs []error
	walkEnvFields(val.Elem(), lookup, &errs)
	return errors.Join(errs...)
}

func walkEnvFields(val reflect.Value, lookup lookupFunc, errs *[]error) {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		meta := typ.Field(i)

		if field.Kind() == reflect.Struct {
			walkEnvFields(field, lookup, errs)
			continue
		}

		key := meta.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		if err := assignEnvValue(field, strings.TrimSpace(raw)); err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		}
	}
}

func assignEnvValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return errors.New("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
