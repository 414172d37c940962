// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

// Package testkeys generates ephemeral test keys.
//
// Generated keys are unique per execution of the binary and are generated
// on demand.
//
// DO NOT USE THESE KEYS OUTSIDE OF UNIT TESTING.
package testkeys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
)

var (
	rsa1024Once sync.Once
	rsa2048Once sync.Once
)

var (
	rsa1024Private *rsa.PrivateKey
	rsa2048Private *rsa.PrivateKey
)

// Ephemeral RSA-1024 key which is unique per execution of the binary.
func RSA1024() *rsa.PrivateKey {
	rsa1024Once.Do(func() {
		//nolint:gosec // check to ensure key size < 2048 is rejected.
		rsa1024Private, _ = rsa.GenerateKey(rand.Reader, 1024)
	})
	return rsa1024Private
}

// Ephemeral RSA-2048 key which is unique per execution of the binary.
func RSA2048() *rsa.PrivateKey {
	rsa2048Once.Do(func() {
		rsa2048Private, _ = rsa.GenerateKey(rand.Reader, 2048)
	})
	return rsa2048Private
}

// PEM encodes the given RSA key in PKCS1 form, as GitHub app keys are.
func PEM(key *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}
