// Package environ provides the environment lookup used by provider selection,
// task composition and precondition checks. Components take an Environment
// instead of reading the process environment directly.
package environ

import "os"

// Environment resolves variable names to values.
type Environment interface {
	// Lookup returns the value of key and whether it is set.
	Lookup(key string) (string, bool)
}

// OS reads from the process environment.
type OS struct{}

// Lookup implements Environment.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map is an in-memory environment, mostly used by tests.
type Map map[string]string

// Lookup implements Environment.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Get returns the value of key, or "" when the variable is unset.
func Get(env Environment, key string) string {
	if env == nil || key == "" {
		return ""
	}
	v, _ := env.Lookup(key)
	return v
}

// Has reports whether key is set to a non-empty value.
func Has(env Environment, key string) bool {
	return Get(env, key) != ""
}

// First returns the first non-empty value among keys.
func First(env Environment, keys ...string) (string, bool) {
	for _, k := range keys {
		if v := Get(env, k); v != "" {
			return v, true
		}
	}
	return "", false
}
