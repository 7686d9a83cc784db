// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads an optional YAML file, then applies environment overrides.
// An empty path means "no file": defaults plus environment only.
// Load does not validate or normalize.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}
	return &cfg, nil
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env.local then .env.
// Missing files are not an error. Already-set variables are never replaced.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides walks cfg and sets every field tagged `env:"NAME"`
// whose variable is non-empty. A value that does not parse is an error
// naming the variable.
func applyEnvOverrides(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return applyEnvToStruct(v)
}

func applyEnvToStruct(v reflect.Value) error {
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{}) {
			if err := applyEnvToStruct(field); err != nil {
				return err
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		val := os.Getenv(name)
		if val == "" {
			continue
		}
		if err := setFieldFromString(field, val); err != nil {
			return fmt.Errorf("env %s=%q: %w", name, val, err)
		}
	}
	return nil
}

func setFieldFromString(field reflect.Value, val string) error {
	switch field.Kind() {
	case reflect.Ptr:
		// Optional scalars: allocate so an explicit zero is distinguishable.
		elem := reflect.New(field.Type().Elem())
		if err := setFieldFromString(elem.Elem(), val); err != nil {
			return err
		}
		field.Set(elem)

	case reflect.String:
		field.SetString(val)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s := strings.TrimSpace(val)
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)

	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			field.SetBool(true)
		case "false", "0", "no":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid boolean %q", val)
		}

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		parts := strings.Split(val, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
