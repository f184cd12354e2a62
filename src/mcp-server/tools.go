// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolDefinition pairs an MCP tool with its handler and a role label used
// in the server instructions.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
	Role    string
}

// createTools creates all MCP tool definitions backed by the shared verifier.
//
// The function defines the following tools:
//   - verify_request: Runs the full authentication pipeline on a captured request
//   - validate_cert_url: Checks only the structural constraints of a bundle URL
//   - inspect_cert_chain: Fetches a bundle and reports on chain validity
func createTools(v *verifier.Verifier) []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("verify_request",
				mcp.WithDescription("Verify a captured Alexa skill webhook request: certificate chain URL, chain trust, body signature and timestamp"),
				mcp.WithString("cert_url",
					mcp.Required(),
					mcp.Description("SignatureCertChainUrl header value"),
				),
				mcp.WithString("signature",
					mcp.Required(),
					mcp.Description("Base64 Signature header value"),
				),
				mcp.WithString("body_base64",
					mcp.Required(),
					mcp.Description("Base64 of the exact raw request body bytes"),
				),
			),
			Handler: handleVerifyRequest(v),
			Role:    "requestVerifier",
		},
		{
			Tool: mcp.NewTool("validate_cert_url",
				mcp.WithDescription("Check the structural constraints (scheme, host, path, port) of a certificate bundle URL without fetching it"),
				mcp.WithString("cert_url",
					mcp.Required(),
					mcp.Description("Certificate bundle URL to check"),
				),
			),
			Handler: handleValidateCertURL,
			Role:    "urlValidator",
		},
		{
			Tool: mcp.NewTool("inspect_cert_chain",
				mcp.WithDescription("Fetch a certificate bundle and report its chain with validity, subject and trust checks"),
				mcp.WithString("cert_url",
					mcp.Required(),
					mcp.Description("Certificate bundle URL to fetch"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'table' or 'tree' (default: table)"),
					mcp.DefaultString("table"),
				),
			),
			Handler: handleInspectCertChain(v),
			Role:    "chainInspector",
		},
	}
}
