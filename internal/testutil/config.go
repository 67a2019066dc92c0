package testutil

import (
	"testing"

	"github.com/spf13/viper"
)

// ResetViper clears the global viper instance now and again when the test completes.
func ResetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

// SetViperValue sets a global viper value and resets viper when the test completes.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	viper.Set(key, value)
	t.Cleanup(viper.Reset)
}

// UseTestStorage points the favorites store at a file inside env.
func UseTestStorage(t *testing.T, env *TestEnv, backend string) string {
	t.Helper()

	name := "favorites.db"
	if backend == "file" {
		name = "favorites.json"
	}
	path := env.Path(name)
	SetViperValue(t, "storage.backend", backend)
	SetViperValue(t, "storage.path", path)
	return path
}
