// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// alexa-webhook-verifier is a command-line tool for verifying captured
// Alexa skill webhook requests offline: it checks the certificate chain
// URL, fetches and validates the signing-certificate chain, verifies the
// body signature, and bounds the request timestamp.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/alexa-webhook-verifier/cmd/alexa-webhook-verifier@latest
//
// # Usage
//
//	alexa-webhook-verifier request.json -s signature.txt \
//	    -u https://s3.amazonaws.com/echo.api/echo-api-cert.pem -c
package main
