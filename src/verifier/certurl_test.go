// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
)

func TestValidateCertChainURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{
			name: "Canonical Bundle URL",
			url:  "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
		},
		{
			name: "Uppercase Scheme And Host",
			url:  "HTTPS://S3.AMAZONAWS.COM/echo.api/echo-api-cert-12.pem",
		},
		{
			name: "Explicit Port 443",
			url:  "https://s3.amazonaws.com:443/echo.api/echo-api-cert-12.pem",
		},
		{
			name: "Nested Path Under Prefix",
			url:  "https://s3.amazonaws.com/echo.api/certs/current/bundle.pem",
		},
		{
			name:    "HTTP Scheme",
			url:     "http://s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidScheme,
		},
		{
			name:    "Missing Scheme",
			url:     "s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidScheme,
		},
		{
			name:    "Unparsable URL",
			url:     "https://s3.amazonaws.com/echo.api/%zz",
			wantErr: verifier.ErrInvalidScheme,
		},
		{
			name:    "Wrong Host",
			url:     "https://mybucket.s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidHost,
		},
		{
			name:    "Host Spoofed Via Userinfo",
			url:     "https://s3.amazonaws.com@evil.example.com/echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidHost,
		},
		{
			name:    "Path Outside Prefix",
			url:     "https://s3.amazonaws.com/not.echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidPath,
		},
		{
			name:    "Uppercase Path Prefix",
			url:     "https://s3.amazonaws.com/ECHO.API/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidPath,
		},
		{
			name:    "Missing Path",
			url:     "https://s3.amazonaws.com",
			wantErr: verifier.ErrInvalidPath,
		},
		{
			name:    "Dot-Dot Before Prefix",
			url:     "https://s3.amazonaws.com/../echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidPath,
		},
		{
			name:    "Non-Standard Port",
			url:     "https://s3.amazonaws.com:8443/echo.api/echo-api-cert-12.pem",
			wantErr: verifier.ErrInvalidPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := verifier.ValidateCertChainURL(tt.url)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}

			require.NoError(t, err, "ValidateCertChainURL() error")
			assert.NotNil(t, u)
		})
	}
}

// Dot-dot segments inside the path are matched literally, not collapsed:
// a path that starts with the prefix passes even if normalization would
// escape it.
func TestValidateCertChainURLLiteralPrefix(t *testing.T) {
	u, err := verifier.ValidateCertChainURL("https://s3.amazonaws.com/echo.api/../other/bundle.pem")
	require.NoError(t, err)
	assert.Equal(t, "/echo.api/../other/bundle.pem", u.Path)
}
