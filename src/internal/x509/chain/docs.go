// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain models the ordered [X.509] certificate chain retrieved
// from a signing-certificate bundle. It exposes the leaf and intermediates,
// verifies the chain against an injected trust-anchor pool at a caller-chosen
// reference time, and renders chain summaries for CLI and MCP output.
//
// Revocation checking ([OCSP]/[CRL]) is intentionally absent: the request
// verification pipeline treats the bundle as valid for the lifetime of a
// single request only.
//
// [X.509]: https://grokipedia.com/page/X.509
// [OCSP]: https://grokipedia.com/page/Online_Certificate_Status_Protocol
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
package x509chain
