// SPDX-License-Identifier: EPL-2.0

// Package testutil provides small helpers that keep filesystem and
// environment setup out of test bodies. Every helper fails the test via
// testing.TB instead of returning errors.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MustChdir changes the working directory to dir and returns a cleanup
// function that restores the original one. The test fails immediately if
// the directory change fails.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory to %s: %v", dir, err)
	}
	return func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("failed to restore directory to %s: %v", wd, err)
		}
	}
}

// restoreEnv captures the current state of key and returns a function that
// puts it back, whether that means resetting the old value or unsetting.
func restoreEnv(t testing.TB, key string) func() {
	t.Helper()
	original, had := os.LookupEnv(key)
	return func() {
		var err error
		if had {
			err = os.Setenv(key, original)
		} else {
			err = os.Unsetenv(key)
		}
		if err != nil {
			t.Errorf("failed to restore env %s: %v", key, err)
		}
	}
}

// MustSetenv sets the environment variable key to value and returns a
// cleanup function that restores the prior state. The test fails
// immediately if the set fails.
//
// Unlike testing.T.Setenv this works in parallel tests, at the cost of the
// caller invoking the returned cleanup.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	restore := restoreEnv(t, key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	return restore
}

// MustUnsetenv unsets the environment variable key and returns a cleanup
// function that restores the prior state. The test fails immediately if
// the unset fails.
func MustUnsetenv(t testing.TB, key string) func() {
	t.Helper()
	restore := restoreEnv(t, key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	return restore
}

// MustMkdirAll creates dir along with any missing parents. The test fails
// immediately if creation fails.
func MustMkdirAll(t testing.TB, dir string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(dir, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
}

// MustWriteFile writes data to path, creating parent directories as
// needed. The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// MustReadFile returns the contents of the file at path. The test fails
// immediately if the read fails.
func MustReadFile(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return data
}
