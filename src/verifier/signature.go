// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
)

// VerifySignature checks that signature (base64, from the Signature header)
// is a valid RSA PKCS#1 v1.5 signature over the SHA-1 digest of body,
// using the leaf certificate's public key.
//
// body must be the exact bytes as received on the wire: any re-encoding of
// the request payload changes the digest and falsely rejects the request.
func VerifySignature(signature string, body []byte, leafKey crypto.PublicKey) error {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignatureEncoding, err)
	}

	rsaKey, ok := leafKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("%w: leaf public key is %T, want *rsa.PublicKey", ErrSignatureInvalid, leafKey)
	}

	// SHA-1 is the platform's published signing scheme for this header,
	// not a local choice.
	digest := sha1.Sum(body)

	if err := rsa.VerifyPKCS1v15(rsaKey, crypto.SHA1, digest[:], sig); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	return nil
}
