package config

import (
	"os"
	"testing"
)

// unsetAll removes keys for the rest of the test. Call t.Setenv on each key
// first so the original values are restored on cleanup.
func unsetAll(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
