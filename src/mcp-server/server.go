// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/version"
	"github.com/mark3labs/mcp-go/server"
)

var appVersion = version.Version // default version

// serverInstructions describes the verification tools to MCP clients.
const serverInstructions = `This server verifies Alexa skill webhook requests.

Use verify_request to run the full authentication pipeline on a captured
request (certificate chain URL constraints, chain trust, SHA-1/RSA body
signature, replay-window timestamp). Use validate_cert_url for a pure
structural check of a bundle URL, and inspect_cert_chain to fetch a bundle
and display its certificates with the chain checks applied.`

// GetVersion returns the current version of the MCP server.
func GetVersion() string {
	return appVersion
}

// buildRoots constructs the trust-anchor pool from the configured PEM file,
// or from the system certificate store when none is configured.
func buildRoots(config *Config) (*x509.CertPool, error) {
	if config.Defaults.RootsFile == "" {
		pool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("loading system roots: %w", err)
		}
		return pool, nil
	}

	pemData, err := os.ReadFile(config.Defaults.RootsFile)
	if err != nil {
		return nil, fmt.Errorf("reading roots file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("no usable certificates in roots file %q", config.Defaults.RootsFile)
	}

	return pool, nil
}

// newVerifier builds the shared verifier all tool calls use, applying the
// configured bundle-download timeout.
func newVerifier(config *Config, version string) (*verifier.Verifier, error) {
	roots, err := buildRoots(config)
	if err != nil {
		return nil, err
	}

	v := verifier.New(roots, version)

	fetcher := verifier.NewHTTPFetcher(version)
	fetcher.Timeout = time.Duration(config.Defaults.TimeoutSeconds) * time.Second
	v.Fetcher = fetcher

	return v, nil
}

// Run starts the MCP server with the webhook verification tools.
//
// Configuration is loaded from the file named by the
// MCP_ALEXA_VERIFIER_CONFIG_FILE environment variable, with defaults when
// unset. The server speaks MCP over stdio and shuts down gracefully on
// SIGINT or SIGTERM.
func Run(version string) error {
	appVersion = version

	config, err := loadConfig(os.Getenv("MCP_ALEXA_VERIFIER_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := newVerifier(config, version)
	if err != nil {
		return fmt.Errorf("failed to build verifier: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	s := server.NewMCPServer("alexa-webhook-verifier", version,
		server.WithInstructions(serverInstructions),
	)

	for _, def := range createTools(v) {
		s.AddTool(def.Tool, def.Handler)
	}

	stdioServer := server.NewStdioServer(s)

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
