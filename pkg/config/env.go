package config

import (
	"reflect"
	"strings"
	"sync"
)

// EnvMapping ties an environment variable to the configuration key it sets.
type EnvMapping struct {
	Var string
	Key string
}

var (
	envMappingsOnce sync.Once
	envMappings     []EnvMapping
)

// EnvMappings lists every environment variable the loader recognizes, derived
// from the env tags on Config. The walk runs once; the result is cached.
func EnvMappings() []EnvMapping {
	envMappingsOnce.Do(func() {
		envMappings = collectEnvMappings(reflect.TypeOf(Config{}), "")
	})
	return envMappings
}

func collectEnvMappings(t reflect.Type, prefix string) []EnvMapping {
	var out []EnvMapping
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("koanf")
		if !field.IsExported() || key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if envVar := field.Tag.Get("env"); envVar != "" && envVar != "-" {
			out = append(out, EnvMapping{Var: envVar, Key: key})
		}
		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			out = append(out, collectEnvMappings(field.Type, key)...)
		}
	}
	return out
}

// envVarToKey indexes the mappings by environment variable name.
func envVarToKey() map[string]string {
	mappings := EnvMappings()
	index := make(map[string]string, len(mappings))
	for _, m := range mappings {
		index[m.Var] = m.Key
	}
	return index
}

// EnvVarForKey returns the environment variable that sets key, or "" when the
// key has no explicit mapping.
func EnvVarForKey(key string) string {
	for _, m := range EnvMappings() {
		if m.Key == key {
			return m.Var
		}
	}
	return ""
}

// IsSensitiveKey reports whether the configuration key holds a secret. A key
// is sensitive when its field is a SensitiveString or carries a sensitive tag.
func IsSensitiveKey(key string) bool {
	return isSensitiveField(reflect.TypeOf(Config{}), strings.Split(key, "."))
}

func isSensitiveField(t reflect.Type, parts []string) bool {
	if len(parts) == 0 {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("koanf") != parts[0] {
			continue
		}
		if len(parts) == 1 {
			return field.Type.Name() == "SensitiveString" || field.Tag.Get("sensitive") == "true"
		}
		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			return isSensitiveField(field.Type, parts[1:])
		}
		return false
	}
	return false
}
