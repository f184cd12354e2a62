// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package skillhttp_test

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/skillhttp"
	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/verifier"
)

const testCertURL = "https://s3.amazonaws.com/echo.api/echo-api-cert-12.pem"

// skillTestEnv bundles everything a middleware test needs: a verifier wired
// to a generated PKI and frozen clock, plus the leaf key for signing bodies.
type skillTestEnv struct {
	verifier *verifier.Verifier
	leafKey  *rsa.PrivateKey
	now      time.Time
}

func newSkillTestEnv(t *testing.T) *skillTestEnv {
	t.Helper()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rootKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "generate root key")

	rootTemplate := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName: "Middleware Test Root CA",
		},
		NotBefore:             now.Add(-48 * time.Hour),
		NotAfter:              now.Add(48 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	rootDER, err := x509.CreateCertificate(rand.Reader, &rootTemplate, &rootTemplate, &rootKey.PublicKey, rootKey)
	require.NoError(t, err, "create root certificate")

	rootCert, err := x509.ParseCertificate(rootDER)
	require.NoError(t, err, "parse root certificate")

	leafKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "generate leaf key")

	leafTemplate := x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject: pkix.Name{
			CommonName: "echo-api.amazon.com",
		},
		NotBefore:   now.Add(-24 * time.Hour),
		NotAfter:    now.Add(24 * time.Hour),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:    []string{"echo-api.amazon.com"},
	}

	leafDER, err := x509.CreateCertificate(rand.Reader, &leafTemplate, rootCert, &leafKey.PublicKey, rootKey)
	require.NoError(t, err, "create leaf certificate")

	var bundle bytes.Buffer
	require.NoError(t, pem.Encode(&bundle, &pem.Block{Type: "CERTIFICATE", Bytes: leafDER}))
	require.NoError(t, pem.Encode(&bundle, &pem.Block{Type: "CERTIFICATE", Bytes: rootDER}))
	bundlePEM := bundle.Bytes()

	roots := x509.NewCertPool()
	roots.AddCert(rootCert)

	v := verifier.New(roots, "test")
	v.Clock = verifier.ClockFunc(func() time.Time { return now })
	v.Fetcher = verifier.FetcherFunc(func(_ context.Context, url string) ([]byte, error) {
		if url != testCertURL {
			return nil, fmt.Errorf("no bundle at %q", url)
		}
		return bundlePEM, nil
	})

	return &skillTestEnv{verifier: v, leafKey: leafKey, now: now}
}

// signedSkillRequest builds a POST carrying a correctly signed skill payload.
func (e *skillTestEnv) signedSkillRequest(t *testing.T) (*http.Request, []byte) {
	t.Helper()

	ts := e.now.Format(verifier.TimestampLayout)
	body := fmt.Appendf(nil, `{"version":"1.0","request":{"type":"IntentRequest","requestId":"amzn1.echo-api.request.test","timestamp":%q}}`, ts)

	digest := sha1.Sum(body)
	sig, err := rsa.SignPKCS1v15(rand.Reader, e.leafKey, crypto.SHA1, digest[:])
	require.NoError(t, err, "sign body")

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set(skillhttp.HeaderCertChainURL, testCertURL)
	req.Header.Set(skillhttp.HeaderSignature, base64.StdEncoding.EncodeToString(sig))

	return req, body
}

func TestVerifyRequest(t *testing.T) {
	env := newSkillTestEnv(t)

	t.Run("Authentic Request", func(t *testing.T) {
		req, body := env.signedSkillRequest(t)

		got, err := skillhttp.VerifyRequest(env.verifier, req)
		require.NoError(t, err, "VerifyRequest() error")
		assert.Equal(t, body, got, "returned body must be the exact received bytes")
	})

	t.Run("Missing Headers", func(t *testing.T) {
		req, _ := env.signedSkillRequest(t)
		req.Header.Del(skillhttp.HeaderCertChainURL)
		req.Header.Del(skillhttp.HeaderSignature)

		_, err := skillhttp.VerifyRequest(env.verifier, req)
		assert.ErrorIs(t, err, verifier.ErrInvalidScheme)
	})

	t.Run("Oversized Body", func(t *testing.T) {
		req, _ := env.signedSkillRequest(t)
		req.Body = io.NopCloser(bytes.NewReader(bytes.Repeat([]byte("a"), 1<<20+1)))

		_, err := skillhttp.VerifyRequest(env.verifier, req)
		assert.ErrorIs(t, err, skillhttp.ErrBodyTooLarge)
	})

	t.Run("Body At Size Limit Is Read Fully", func(t *testing.T) {
		// A body of exactly the cap must not be mistaken for an oversized
		// one; it fails later on envelope shape, not on size.
		req, _ := env.signedSkillRequest(t)
		req.Body = io.NopCloser(bytes.NewReader(bytes.Repeat([]byte("a"), 1<<20)))

		_, err := skillhttp.VerifyRequest(env.verifier, req)
		assert.NotErrorIs(t, err, skillhttp.ErrBodyTooLarge)
	})

	t.Run("Body Not A Skill Payload", func(t *testing.T) {
		req, _ := env.signedSkillRequest(t)
		req.Body = io.NopCloser(bytes.NewReader([]byte(`{"version":"1.0"}`)))

		_, err := skillhttp.VerifyRequest(env.verifier, req)
		assert.Error(t, err)
	})
}

func TestMiddleware(t *testing.T) {
	env := newSkillTestEnv(t)

	t.Run("Accepted Request Reaches Handler", func(t *testing.T) {
		req, body := env.signedSkillRequest(t)

		var handlerBody []byte
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error
			handlerBody, err = io.ReadAll(r.Body)
			require.NoError(t, err)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		skillhttp.Middleware(env.verifier, nil, next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, body, handlerBody, "handler must see the restored body")
	})

	t.Run("Rejected Request Gets Bare 401", func(t *testing.T) {
		req, _ := env.signedSkillRequest(t)
		req.Header.Set(skillhttp.HeaderCertChainURL, "http://s3.amazonaws.com/echo.api/echo-api-cert-12.pem")

		handlerRan := false
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerRan = true })

		rec := httptest.NewRecorder()
		skillhttp.Middleware(env.verifier, nil, next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handlerRan, "handler must not run for a rejected request")
		assert.Equal(t, "Not Authorized\n", rec.Body.String(), "rejection reason must not leak to the client")
	})

	t.Run("Tampered Body Rejected", func(t *testing.T) {
		req, body := env.signedSkillRequest(t)

		tampered := bytes.Replace(body, []byte("IntentRequest"), []byte("LaunchRequest"), 1)
		req.Body = io.NopCloser(bytes.NewReader(tampered))

		rec := httptest.NewRecorder()
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler must not run for a tampered body")
		})
		skillhttp.Middleware(env.verifier, nil, next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
