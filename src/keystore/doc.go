// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package keystore loads trust pools and signer sets from disk or memory.
//
// A [Source] produces a [Store], an ordered list of aliased certificates.
// The order is the load order: files in the order given, directory members
// sorted by name, and certificates within a file in encoding order. That
// order is significant because the trust-path search scans the pool from
// its last entry backwards.
//
// Supported encodings are PEM bundles, concatenated DER, PKCS7 bundles and
// password protected PKCS12 keystores (recognised by a .p12 or .pfx
// extension).
package keystore
