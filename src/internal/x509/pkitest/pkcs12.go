// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkitest

import (
	"bytes"
	_ "embed"
)

// PKCS12Password unlocks the keystore returned by [PKCS12Chain].
const PKCS12Password = "changeit"

// Subject common names stored in the [PKCS12Chain] keystore, in bag order.
const (
	PKCS12LeafCN         = "fixture.example.com"
	PKCS12IntermediateCN = "Fixture Intermediate"
	PKCS12RootCN         = "Fixture Root"
)

// Generated with openssl (EC P-256, SHA-256 signatures, 3DES PBE, SHA-1 MAC)
// and valid from 2020-01-01 to 2120-01-01.
//
//go:embed testdata/chain.p12
var pkcs12Chain []byte

// PKCS12Chain returns a PKCS12 keystore holding the leaf certificate with
// its private key followed by the intermediate and the self-signed root that
// issued it.
func PKCS12Chain() []byte { return bytes.Clone(pkcs12Chain) }
