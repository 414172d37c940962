// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aaryanshroff/ops-medic/internal/testkeys"
)

func TestLoadPrivateKey(t *testing.T) {
	dir := t.TempDir()

	keyFile := filepath.Join(dir, "app.pem")
	if err := os.WriteFile(keyFile, testkeys.PEM(testkeys.RSA2048()), 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	weakKeyFile := filepath.Join(dir, "weak.pem")
	if err := os.WriteFile(weakKeyFile, testkeys.PEM(testkeys.RSA1024()), 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	garbageFile := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(garbageFile, []byte("not a pem file"), 0o600); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}

	tt := []struct {
		name string
		path string
		ok   bool
	}{
		{
			name: "valid",
			path: keyFile,
			ok:   true,
		},
		{
			name: "path-not-set",
		},
		{
			name: "missing-file",
			path: filepath.Join(dir, "no-such-key.pem"),
		},
		{
			name: "not-a-pem",
			path: garbageFile,
		},
		{
			name: "rsa-key-1024",
			path: weakKeyFile,
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			key, err := LoadPrivateKey(tc.path)
			if tc.ok != (err == nil) {
				t.Fatalf("ok=%v, expected.ok=%v, err=%v", err == nil, tc.ok, err)
			}
			if !tc.ok {
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("expected ErrConfiguration, got %v", err)
				}
				return
			}
			if !key.Equal(testkeys.RSA2048()) {
				t.Errorf("loaded key does not match original")
			}
		})
	}
}
