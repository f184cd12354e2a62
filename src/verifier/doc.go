// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package verifier authenticates inbound Alexa skill webhook requests.
//
// A request is accepted only when every stage of a strict sequential
// pipeline passes: the certificate-chain URL is structurally constrained,
// the signing-certificate bundle is fetched and validated (temporal
// validity, subject identity, trust chain against injected anchors), the
// request body signature verifies against the leaf public key (SHA-1/RSA
// PKCS#1 v1.5, the platform's published scheme), and the claimed request
// timestamp falls within the replay window. The first failing stage aborts
// verification and the returned error wraps exactly one member of the
// rejection taxonomy, so callers can match with [errors.Is].
//
// The reference clock and the bundle fetch are injected capabilities,
// which keeps every stage deterministic under test. Verification calls
// share no mutable state and may run concurrently.
package verifier
