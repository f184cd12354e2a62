// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/envelope"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// handleVerifyRequest runs the full authentication pipeline on a captured
// request. Rejections are reported as tool text, not tool errors: the tool
// itself succeeded at answering the question.
func handleVerifyRequest(v *verifier.Verifier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		certURL, err := request.RequireString("cert_url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		signature, err := request.RequireString("signature")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bodyB64, err := request.RequireString("body_base64")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		body, err := base64.StdEncoding.DecodeString(bodyB64)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("body_base64 is not valid base64: %v", err)), nil
		}

		env, err := envelope.Parse(body)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("REJECTED: %v", err)), nil
		}

		req := verifier.Request{
			CertChainURL: certURL,
			Signature:    signature,
			Body:         body,
			Timestamp:    env.Request.Timestamp,
		}

		if err := v.Verify(ctx, req); err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("REJECTED: %v", err)), nil
		}

		return mcp.NewToolResultText("ACCEPTED: request signature, certificate chain and timestamp are valid"), nil
	}
}

// handleValidateCertURL checks only the structural URL constraints.
// It never performs network access.
func handleValidateCertURL(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certURL, err := request.RequireString("cert_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := verifier.ValidateCertChainURL(certURL); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("INVALID: %v", err)), nil
	}

	return mcp.NewToolResultText("VALID: URL satisfies the bundle location constraints"), nil
}

// handleInspectCertChain fetches a bundle and reports the chain with the
// outcome of the certificate checks.
func handleInspectCertChain(v *verifier.Verifier) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		certURL, err := request.RequireString("cert_url")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		format := request.GetString("format", "table")

		chain, err := v.FetchChain(ctx, certURL)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("FETCH FAILED: %v", err)), nil
		}

		var rendered string
		if format == "tree" {
			rendered = chain.RenderASCIITree()
		} else {
			rendered = chain.RenderTable()
		}

		verdict := "chain checks passed"
		if err := v.ValidateChain(chain); err != nil {
			verdict = fmt.Sprintf("chain checks failed: %v", err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", rendered, verdict)), nil
	}
}
