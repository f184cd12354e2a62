// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package skillhttp gates a skill webhook server behind request
// verification. It is the only place the verification core touches
// net/http: headers and body are lifted off the request, the pipeline
// decides, and rejected requests are answered with a bare 401 so internal
// rejection reasons never reach the client.
package skillhttp

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/envelope"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/logger"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
)

// Request headers the platform signs requests with.
const (
	HeaderCertChainURL = "SignatureCertChainUrl"
	HeaderSignature    = "Signature"
)

// maxRequestBody caps how much of the request body is read.
// Skill payloads are small; anything larger is not a legitimate request.
const maxRequestBody = 1 << 20

// ErrBodyTooLarge indicates the request body exceeds maxRequestBody.
// A truncated body would verify against the wrong bytes, so the size check
// rejects before any pipeline stage runs.
var ErrBodyTooLarge = errors.New("skillhttp: request body exceeds maximum size")

// VerifyRequest authenticates r against v and returns the verified body
// bytes. The body is read exactly as received; the timestamp is extracted
// from the parsed payload after schema validation. A non-nil error means
// the request must not reach business logic.
//
// r.Body is consumed. Callers that need it afterwards should use
// [Middleware], which restores the body for the next handler.
func VerifyRequest(v *verifier.Verifier, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxRequestBody {
		return nil, ErrBodyTooLarge
	}

	env, err := envelope.Parse(body)
	if err != nil {
		return nil, err
	}

	req := verifier.Request{
		CertChainURL: r.Header.Get(HeaderCertChainURL),
		Signature:    r.Header.Get(HeaderSignature),
		Body:         body,
		Timestamp:    env.Request.Timestamp,
	}

	if err := v.Verify(r.Context(), req); err != nil {
		return nil, err
	}

	return body, nil
}

// Middleware wraps next so only authenticated skill requests reach it.
// The verified body is restored on the request before next runs. log
// receives one line per rejection and may be nil.
func Middleware(v *verifier.Verifier, log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := VerifyRequest(v, r)
		if err != nil {
			if log != nil {
				log.Printf("request rejected: %v", err)
			}
			http.Error(w, "Not Authorized", http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
