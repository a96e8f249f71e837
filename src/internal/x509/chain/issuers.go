// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import "crypto/x509"

// TrustedIssuers returns the issuer identities of the signer certificates that
// have a trust path in pool. Each identity appears once, in the order its
// first trusted signer appears in signers. Signers without a path, and nil
// entries, are skipped.
func (v *Validator) TrustedIssuers(signers, pool []*x509.Certificate) []string {
	var issuers []string
	seen := make(map[string]struct{})

	for _, signer := range signers {
		if !v.Validate(signer, pool) {
			continue
		}

		id := Identity(signer.Issuer)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		issuers = append(issuers, id)
	}

	return issuers
}

// TrustedIssuers is [Validator.TrustedIssuers] with default options.
func TrustedIssuers(signers, pool []*x509.Certificate) []string {
	return defaultValidator.TrustedIssuers(signers, pool)
}
