// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// getCertificateRole labels a chain position for display output.
func (ch *Chain) getCertificateRole(i int) string {
	switch {
	case i == 0:
		return "Leaf"
	case ch.IsSelfSigned(ch.certs[i]):
		return "Root"
	default:
		return "Intermediate"
	}
}

// keyDescription formats the public key algorithm and size for display.
func keyDescription(pub any) string {
	switch key := pub.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", key.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", key.Curve.Params().BitSize)
	default:
		return "unknown"
	}
}

// RenderASCIITree renders the certificate chain as an ASCII tree diagram.
//
// It displays the certificate hierarchy with visual connectors showing the
// relationship between leaf, intermediate, and root certificates.
func (ch *Chain) RenderASCIITree() string {
	var result strings.Builder
	for i, cert := range ch.certs {
		connector := "├── "
		if i == len(ch.certs)-1 {
			connector = "└── "
		}

		result.WriteString(fmt.Sprintf("%s%s (%s)\n", connector, cert.Subject.CommonName, ch.getCertificateRole(i)))
	}

	return result.String()
}

// RenderTable renders the certificate chain as a formatted markdown table.
//
// It displays certificate details including role, subject, issuer, and the
// validity window in a tabular format using tablewriter.
func (ch *Chain) RenderTable() string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Not Before", "Not After", "Key"})

	var rows [][]string
	for i, cert := range ch.certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.getCertificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotBefore.Format("2006-01-02"),
			cert.NotAfter.Format("2006-01-02"),
			keyDescription(cert.PublicKey),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
