// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import (
	"context"
	"crypto/x509"
	"fmt"
	"strings"
	"time"

	x509certs "github.com/H0llyW00dzZ/alexa-webhook-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/alexa-webhook-verifier/src/internal/x509/chain"
)

// certSubjectIdentity is the identity the leaf certificate subject must
// carry. The match is a case-insensitive substring check, mirroring the
// reference behavior, not a SAN/CN grammar check.
const certSubjectIdentity = "echo-api.amazon.com"

// Request carries the pieces of an inbound webhook request the pipeline
// consumes. The caller owns all fields for the duration of the call.
type Request struct {
	// CertChainURL is the claimed location of the signing certificate
	// bundle, from the SignatureCertChainUrl header.
	CertChainURL string

	// Signature is the base64-encoded request signature, from the
	// Signature header.
	Signature string

	// Body holds the exact raw request body bytes as received.
	Body []byte

	// Timestamp is the ISO-8601 request time extracted from the parsed
	// body payload.
	Timestamp string
}

// Verifier runs the full authentication pipeline for inbound webhook
// requests. Construct it with [New]; the Clock and Fetcher fields may then
// be replaced to inject test doubles. Verification calls are independent
// and may run concurrently, since Roots and Clock are only ever read.
type Verifier struct {
	// Clock supplies the reference time for certificate and timestamp checks.
	Clock Clock

	// Fetcher retrieves the certificate bundle bytes.
	Fetcher Fetcher

	// Roots is the trust-anchor pool the chain must verify against.
	Roots *x509.CertPool

	decoder *x509certs.Certificate
}

// New creates a Verifier that trusts roots, reads the system clock, and
// fetches bundles over HTTPS with a User-Agent carrying version.
func New(roots *x509.CertPool, version string) *Verifier {
	return &Verifier{
		Clock:   SystemClock,
		Fetcher: NewHTTPFetcher(version),
		Roots:   roots,
		decoder: x509certs.New(),
	}
}

// Verify authenticates one webhook request.
//
// The stages run strictly in order: certificate URL structure, bundle fetch
// and decode, chain validation (temporal, subject, trust), body signature,
// request timestamp. The first failure aborts the pipeline and the returned
// error wraps the matching taxonomy sentinel; nil means the request is
// authentic. ctx bounds only the fetch stage, and a caller-imposed timeout
// there surfaces as [ErrCertFetchFailed].
func (v *Verifier) Verify(ctx context.Context, req Request) error {
	chain, err := v.FetchChain(ctx, req.CertChainURL)
	if err != nil {
		return err
	}

	now := v.Clock.Now()

	if err := v.validateChain(chain, now); err != nil {
		return err
	}

	if err := VerifySignature(req.Signature, req.Body, chain.Leaf().PublicKey); err != nil {
		return err
	}

	return ValidateTimestamp(req.Timestamp, now)
}

// FetchChain validates the structure of certURL, retrieves the bundle via
// the injected Fetcher and decodes it into an ordered chain. No fetch is
// attempted for a structurally invalid URL.
func (v *Verifier) FetchChain(ctx context.Context, certURL string) (*x509chain.Chain, error) {
	if _, err := ValidateCertChainURL(certURL); err != nil {
		return nil, err
	}

	data, err := v.Fetcher.Fetch(ctx, certURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertFetchFailed, err)
	}

	// Verifiers assembled field by field skip New, so the decoder may
	// still be unset here.
	decoder := v.decoder
	if decoder == nil {
		decoder = x509certs.New()
	}

	certs, err := decoder.DecodeBundle(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertFetchFailed, err)
	}

	chain, err := x509chain.New(certs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertFetchFailed, err)
	}

	return chain, nil
}

// ValidateChain runs the certificate checks of the pipeline against the
// verifier's trust anchors at the verifier's reference time. It is exposed
// for inspection surfaces (CLI, MCP) that report on a chain without a
// signed request in hand.
func (v *Verifier) ValidateChain(chain *x509chain.Chain) error {
	return v.validateChain(chain, v.Clock.Now())
}

// validateChain checks the leaf's validity window and subject identity,
// then verifies the trust chain. Both window bounds are inclusive: a leaf
// whose NotAfter equals now is still valid.
func (v *Verifier) validateChain(chain *x509chain.Chain, now time.Time) error {
	leaf := chain.Leaf()

	if now.Before(leaf.NotBefore) {
		return fmt.Errorf("%w: not before %s, reference time %s",
			ErrCertNotYetValid, leaf.NotBefore.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}

	if now.After(leaf.NotAfter) {
		return fmt.Errorf("%w: not after %s, reference time %s",
			ErrCertExpired, leaf.NotAfter.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}

	if !strings.Contains(strings.ToLower(leaf.Subject.String()), certSubjectIdentity) {
		return fmt.Errorf("%w: subject %q", ErrInvalidCertSubject, leaf.Subject.String())
	}

	if err := chain.Verify(now, v.Roots); err != nil {
		return fmt.Errorf("%w: %v", ErrUntrustedChain, err)
	}

	return nil
}
