// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import (
	"fmt"
	"net/url"
	"strings"
)

// Structural constraints on the certificate chain URL, published by the
// platform: bundles live only under echo.api/ on the S3 host, over HTTPS.
const (
	certChainHost       = "s3.amazonaws.com"
	certChainPathPrefix = "echo.api/"
	certChainPort       = "443"
)

// ValidateCertChainURL parses raw and enforces the platform's structural
// constraints on certificate bundle locations. It is a pure function of its
// input; no network access happens here.
//
// Scheme and host comparisons are case-insensitive. The path prefix match is
// case-sensitive and intentionally literal: `..` segments are not collapsed,
// matching the reference behavior. An absent port is accepted; an explicit
// port must be 443.
func ValidateCertChainURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: unparsable URL %q: %v", ErrInvalidScheme, raw, err)
	}

	if !strings.EqualFold(u.Scheme, "https") {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidScheme, u.Scheme)
	}

	if !strings.EqualFold(u.Hostname(), certChainHost) {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrInvalidHost, u.Hostname(), certChainHost)
	}

	if !strings.HasPrefix(strings.TrimPrefix(u.Path, "/"), certChainPathPrefix) {
		return nil, fmt.Errorf("%w: got %q, want prefix %q", ErrInvalidPath, u.Path, certChainPathPrefix)
	}

	if port := u.Port(); port != "" && port != certChainPort {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPort, port)
	}

	return u, nil
}
