// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubauth

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// LoadPrivateKey reads and parses the GitHub App's PEM encoded RSA
// private key from path.
//
// A missing or unparseable key is a fatal configuration problem, not a
// transient failure. All errors unwrap to [ErrConfiguration] and must
// not be retried.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: private key path is not set", ErrConfiguration)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read private key %q: %w",
			ErrConfiguration, path, err)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse private key %q: %w",
			ErrConfiguration, path, err)
	}

	// GitHub app keys are RSA-2048. Reject anything weaker.
	if key.N.BitLen() < 2048 {
		return nil, fmt.Errorf("%w: rsa key size(%d) < 2048 bits",
			ErrConfiguration, key.N.BitLen())
	}

	return key, nil
}
