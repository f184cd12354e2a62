// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that a PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse a certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrEmptyBundle indicates that a bundle contained no certificates at all.
	ErrEmptyBundle = errors.New("x509certs: empty certificate bundle")
)

// Certificate provides methods to decode and encode [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != c.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// DecodeBundle decodes an ordered certificate bundle from data.
//
// The signing infrastructure publishes the bundle leaf first, so the result
// preserves input order: index 0 is the end-entity certificate, followed by
// any intermediates and finally the issuing root. PEM input may contain any
// number of CERTIFICATE blocks; raw DER input is parsed as a concatenated
// certificate sequence, falling back to PKCS7 (taking the embedded
// certificates in order) when that fails. A bundle that yields no
// certificates is an error.
func (c *Certificate) DecodeBundle(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate

	if c.IsPEM(data) {
		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != c.certBlockType {
				return nil, ErrInvalidBlockType
			}

			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, ErrParseCertificate
			}

			certs = append(certs, cert)
			data = rest
		}
	} else {
		var err error
		certs, err = x509.ParseCertificates(data)
		if err != nil {
			certs, err = c.decodePKCS7(data)
			if err != nil {
				return nil, err
			}
		}
	}

	if len(certs) == 0 {
		return nil, ErrEmptyBundle
	}

	return certs, nil
}

// decodePKCS7 extracts the certificates embedded in PKCS7 data, in order,
// using Cloudflare's library.
func (c *Certificate) decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates, nil
}

// Decode decodes a single certificate from data.
//
// PEM and DER input are handled directly; anything else is attempted as
// PKCS7 using Cloudflare's library, taking the first embedded certificate.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	certs, err := c.decodePKCS7(data)
	if err != nil {
		return nil, err
	}

	return certs[0], nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeBundlePEM encodes an ordered list of certificates to a PEM bundle.
func (c *Certificate) EncodeBundlePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}
