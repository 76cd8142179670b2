// SPDX-License-Identifier: EPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MustSetenv sets key to value and returns a function restoring the prior
// state, whether that was a different value or no value at all. Fails the
// test if the variable cannot be set.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	prior, existed := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s: %v", key, err)
	}
	return func() {
		if existed {
			if err := os.Setenv(key, prior); err != nil {
				t.Errorf("restore env %s: %v", key, err)
			}
			return
		}
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("unset env %s: %v", key, err)
		}
	}
}

// MustUnsetenv clears key and returns a function restoring the prior value
// when one existed. Fails the test if the variable cannot be cleared.
func MustUnsetenv(t testing.TB, key string) func() {
	t.Helper()
	prior, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
	return func() {
		if existed {
			if err := os.Setenv(key, prior); err != nil {
				t.Errorf("restore env %s: %v", key, err)
			}
		}
	}
}

// MustMkdirAll creates path with any missing parents, failing the test on
// error.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

// MustWriteFile writes data to path, creating missing parent directories,
// failing the test on error.
func MustWriteFile(t testing.TB, path string, data []byte, perm os.FileMode) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
