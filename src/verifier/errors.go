// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import "errors"

// Rejection taxonomy. Every error returned by [Verifier.Verify] wraps
// exactly one of these sentinels; there is no warning state, a rejection
// is always terminal for the request.
var (
	// ErrInvalidScheme indicates the certificate chain URL scheme is not https.
	ErrInvalidScheme = errors.New("verifier: certificate chain URL scheme is not https")

	// ErrInvalidHost indicates the certificate chain URL host is not the platform's bundle host.
	ErrInvalidHost = errors.New("verifier: certificate chain URL host is not the platform bundle host")

	// ErrInvalidPath indicates the certificate chain URL path lacks the required prefix.
	ErrInvalidPath = errors.New("verifier: certificate chain URL path lacks the required prefix")

	// ErrInvalidPort indicates the certificate chain URL carries an explicit non-443 port.
	ErrInvalidPort = errors.New("verifier: certificate chain URL port is not 443")

	// ErrCertFetchFailed indicates the certificate bundle could not be retrieved or parsed.
	ErrCertFetchFailed = errors.New("verifier: failed to fetch certificate bundle")

	// ErrCertNotYetValid indicates the leaf certificate's validity window has not started.
	ErrCertNotYetValid = errors.New("verifier: signing certificate not yet valid")

	// ErrCertExpired indicates the leaf certificate's validity window has ended.
	ErrCertExpired = errors.New("verifier: signing certificate expired")

	// ErrInvalidCertSubject indicates the leaf certificate subject lacks the platform identity.
	ErrInvalidCertSubject = errors.New("verifier: signing certificate subject lacks platform identity")

	// ErrUntrustedChain indicates the chain does not verify against the trust anchors.
	ErrUntrustedChain = errors.New("verifier: certificate chain not trusted")

	// ErrInvalidSignatureEncoding indicates the signature header is not valid base64.
	ErrInvalidSignatureEncoding = errors.New("verifier: signature is not valid base64")

	// ErrSignatureInvalid indicates the signature does not verify over the request body.
	ErrSignatureInvalid = errors.New("verifier: signature does not match request body")

	// ErrInvalidTimestampFormat indicates the request timestamp could not be parsed.
	ErrInvalidTimestampFormat = errors.New("verifier: request timestamp is not valid ISO-8601")

	// ErrTimestampOutOfRange indicates the request timestamp falls outside the replay window.
	ErrTimestampOutOfRange = errors.New("verifier: request timestamp outside replay window")
)
