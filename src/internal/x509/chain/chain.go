// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"time"
)

// ErrEmptyChain indicates an attempt to build a chain from zero certificates.
var ErrEmptyChain = errors.New("x509chain: empty certificate chain")

// Chain holds an ordered [X.509] certificate chain as retrieved from a
// signing-certificate bundle: index 0 is the leaf (end-entity) certificate,
// followed by intermediates and optionally the issuing root.
//
// A Chain is immutable after construction and therefore safe for concurrent
// reads, although the verification pipeline builds one per request and
// discards it afterwards.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	certs []*x509.Certificate
}

// New creates a Chain from an ordered, leaf-first certificate list.
func New(certs []*x509.Certificate) (*Chain, error) {
	if len(certs) == 0 {
		return nil, ErrEmptyChain
	}
	return &Chain{certs: certs}, nil
}

// Leaf returns the end-entity certificate whose public key signs request bodies.
func (ch *Chain) Leaf() *x509.Certificate { return ch.certs[0] }

// Len returns the number of certificates in the chain.
func (ch *Chain) Len() int { return len(ch.certs) }

// Certs returns the full chain in bundle order.
func (ch *Chain) Certs() []*x509.Certificate { return ch.certs }

// Intermediates returns every certificate after the leaf.
// The issuing root, when the bundle includes one, stays in this set; the
// verifier only trusts roots from its injected anchor pool, so a bundled
// root acts as just another untrusted intermediate.
func (ch *Chain) Intermediates() []*x509.Certificate {
	if len(ch.certs) <= 1 {
		return nil
	}
	return ch.certs[1:]
}

// IntermediatePool builds a certificate pool from the intermediates.
func (ch *Chain) IntermediatePool() *x509.CertPool {
	pool := x509.NewCertPool()
	for _, cert := range ch.Intermediates() {
		pool.AddCert(cert)
	}
	return pool
}

// IsSelfSigned checks if a certificate is signed by its own key.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return cert.CheckSignatureFrom(cert) == nil
}

// Verify checks that the leaf chains to one of the supplied trust anchors,
// using the bundle's own intermediates and evaluating validity at now.
//
// The original error from the verification process is returned to preserve
// detailed diagnostic information (e.g., expiration, unknown authority).
func (ch *Chain) Verify(now time.Time, roots *x509.CertPool) error {
	opts := x509.VerifyOptions{
		Roots:         roots,
		Intermediates: ch.IntermediatePool(),
		CurrentTime:   now,
	}

	if _, err := ch.Leaf().Verify(opts); err != nil {
		return err
	}

	return nil
}
