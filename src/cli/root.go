// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/envelope"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/logger"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
	"github.com/spf13/cobra"
)

var (
	signatureFile string
	certURL       string
	rootsFile     string
	referenceTime string
	showChain     bool
)

// OperationPerformed reports whether a verification run completed
// (accepted or rejected), as opposed to exiting on usage errors.
var OperationPerformed bool

// OperationPerformedSuccessfully reports whether the verified request was accepted.
var OperationPerformedSuccessfully bool

// Execute runs the root command for offline verification of a captured
// skill webhook request.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:     posix.GetExecutableName() + " [REQUEST_BODY_FILE]",
		Short:   "Alexa skill webhook request verifier",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCli(cmd.Context(), version, log, args[0])
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&signatureFile, "signature", "s", "", "file holding the base64 Signature header value (required)")
	rootCmd.Flags().StringVarP(&certURL, "cert-url", "u", "", "SignatureCertChainUrl header value (required)")
	rootCmd.Flags().StringVarP(&rootsFile, "roots", "r", "", "PEM file of trusted root CAs (default: system roots)")
	rootCmd.Flags().StringVarP(&referenceTime, "at", "t", "", "reference time as "+verifier.TimestampLayout+" (default: now)")
	rootCmd.Flags().BoolVarP(&showChain, "show-chain", "c", false, "print the certificate chain as a table")

	_ = rootCmd.MarkFlagRequired("signature")
	_ = rootCmd.MarkFlagRequired("cert-url")

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

// execCli verifies a single captured request: the raw body from bodyFile,
// the signature from the --signature file, and the claimed bundle URL from
// --cert-url. The timestamp comes from the body payload itself.
func execCli(ctx context.Context, version string, log logger.Logger, bodyFile string) error {
	body, err := os.ReadFile(bodyFile)
	if err != nil {
		return fmt.Errorf("reading request body file: %w", err)
	}

	sigData, err := os.ReadFile(signatureFile)
	if err != nil {
		return fmt.Errorf("reading signature file: %w", err)
	}

	roots, err := loadRoots()
	if err != nil {
		return err
	}

	env, err := envelope.Parse(body)
	if err != nil {
		return fmt.Errorf("parsing request body payload: %w", err)
	}

	v := verifier.New(roots, version)
	if referenceTime != "" {
		at, err := time.Parse(verifier.TimestampLayout, referenceTime)
		if err != nil {
			return fmt.Errorf("parsing --at value: %w", err)
		}
		v.Clock = verifier.ClockFunc(func() time.Time { return at })
	}

	if showChain {
		chain, err := v.FetchChain(ctx, certURL)
		if err != nil {
			return fmt.Errorf("fetching certificate chain: %w", err)
		}
		log.Println(chain.RenderTable())
	}

	OperationPerformed = true

	req := verifier.Request{
		CertChainURL: certURL,
		Signature:    strings.TrimSpace(string(sigData)),
		Body:         body,
		Timestamp:    env.Request.Timestamp,
	}

	if err := v.Verify(ctx, req); err != nil {
		log.Printf("REJECTED: %v", err)
		return err
	}

	OperationPerformedSuccessfully = true
	log.Println("ACCEPTED: request signature, certificate chain and timestamp are valid.")
	return nil
}

// loadRoots builds the trust-anchor pool, either from a caller-supplied
// PEM file or from the system certificate store.
func loadRoots() (*x509.CertPool, error) {
	if rootsFile == "" {
		pool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("loading system roots: %w", err)
		}
		return pool, nil
	}

	pemData, err := os.ReadFile(rootsFile)
	if err != nil {
		return nil, fmt.Errorf("reading roots file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("no usable certificates in roots file %q", rootsFile)
	}

	return pool, nil
}
