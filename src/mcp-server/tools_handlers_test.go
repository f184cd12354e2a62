// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
)

// callToolRequest builds a CallToolRequest the way the stdio transport would.
func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText flattens the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	content := ""
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			content += tc.Text
		}
	}
	return content
}

func TestHandleValidateCertURL(t *testing.T) {
	tests := []struct {
		name           string
		args           map[string]any
		expectToolErr  bool
		expectContains string
	}{
		{
			name:           "Valid Bundle URL",
			args:           map[string]any{"cert_url": "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem"},
			expectContains: "VALID",
		},
		{
			name:           "HTTP Scheme",
			args:           map[string]any{"cert_url": "http://s3.amazonaws.com/echo.api/echo-api-cert-12.pem"},
			expectContains: "INVALID",
		},
		{
			name:           "Wrong Host",
			args:           map[string]any{"cert_url": "https://evil.example.com/echo.api/cert.pem"},
			expectContains: "INVALID",
		},
		{
			name:          "Missing Argument",
			args:          map[string]any{},
			expectToolErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleValidateCertURL(context.Background(), callToolRequest("validate_cert_url", tt.args))
			require.NoError(t, err, "handler error")
			require.NotNil(t, result)

			if tt.expectToolErr {
				assert.True(t, result.IsError, "expected a tool error result")
				return
			}

			assert.Contains(t, resultText(t, result), tt.expectContains)
		})
	}
}

func TestHandleVerifyRequest(t *testing.T) {
	// The pipeline short-circuits on URL structure, so rejection paths need
	// no real PKI behind the verifier.
	v := verifier.New(x509.NewCertPool(), "test")
	handler := handleVerifyRequest(v)

	body := base64.StdEncoding.EncodeToString([]byte(`{"request":{"timestamp":"2026-03-01T12:00:00Z"}}`))

	tests := []struct {
		name           string
		args           map[string]any
		expectToolErr  bool
		expectContains string
	}{
		{
			name: "Invalid Cert URL Rejected",
			args: map[string]any{
				"cert_url":    "http://s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
				"signature":   "c2ln",
				"body_base64": body,
			},
			expectContains: "REJECTED",
		},
		{
			name: "Body Not A Skill Payload",
			args: map[string]any{
				"cert_url":    "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
				"signature":   "c2ln",
				"body_base64": base64.StdEncoding.EncodeToString([]byte(`{"version":"1.0"}`)),
			},
			expectContains: "REJECTED",
		},
		{
			name: "Body Not Base64",
			args: map[string]any{
				"cert_url":    "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
				"signature":   "c2ln",
				"body_base64": "@@@",
			},
			expectToolErr: true,
		},
		{
			name: "Missing Signature",
			args: map[string]any{
				"cert_url":    "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem",
				"body_base64": body,
			},
			expectToolErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), callToolRequest("verify_request", tt.args))
			require.NoError(t, err, "handler error")
			require.NotNil(t, result)

			if tt.expectToolErr {
				assert.True(t, result.IsError, "expected a tool error result")
				return
			}

			assert.Contains(t, resultText(t, result), tt.expectContains)
		})
	}
}

func TestCreateTools(t *testing.T) {
	v := verifier.New(x509.NewCertPool(), "test")

	tools := createTools(v)
	require.Len(t, tools, 3)

	names := make([]string, 0, len(tools))
	for _, td := range tools {
		names = append(names, td.Tool.Name)
		assert.NotNil(t, td.Handler, "tool %s has no handler", td.Tool.Name)
		assert.NotEmpty(t, td.Tool.Description, "tool %s has no description", td.Tool.Name)
	}

	assert.ElementsMatch(t, []string{"verify_request", "validate_cert_url", "inspect_cert_chain"}, names)
}
