// pkg/viisp/signer.go
package viisp

import (
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
	"golang.org/x/crypto/pkcs12"
)

const (
	// idAttr is the attribute the provider's verifier resolves signature
	// references against. Every request root carries idAttr=uniqueNodeID
	// and the reference URI is "#" + uniqueNodeID.
	idAttr       = "id"
	uniqueNodeID = "uniqueNodeId"
)

// Signer holds one certificate / private key pair and produces enveloped XML
// signatures in the exact shape the provider verifies: exclusive
// canonicalization, SHA-1 digest and RSA-SHA1 signature (a provider
// requirement, not negotiable), with an enveloped-signature transform.
//
// A Signer is immutable after construction and safe for concurrent use.
type Signer struct {
	sctx *dsig.SigningContext
	cert *x509.Certificate
}

// NewSigner parses a base64-encoded PKCS#12 bundle protected by passphrase.
// Construction fails fast on a corrupt bundle, a wrong passphrase or a
// non-RSA key; an invalid certificate must never yield a usable Signer.
func NewSigner(bundle, passphrase string) (*Signer, error) {
	der, err := base64.StdEncoding.DecodeString(strings.TrimSpace(bundle))
	if err != nil {
		return nil, fmt.Errorf("decode certificate bundle: %w", err)
	}
	key, cert, err := pkcs12.Decode(der, passphrase)
	if err != nil {
		return nil, fmt.Errorf("parse certificate bundle: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("certificate bundle: unsupported key type %T", key)
	}
	return NewSignerFromKeyPair(rsaKey, cert)
}

// NewSignerFromKeyPair builds a Signer from already-parsed key material.
func NewSignerFromKeyPair(key *rsa.PrivateKey, cert *x509.Certificate) (*Signer, error) {
	store := dsig.TLSCertKeyStore(tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
	})
	sctx := dsig.NewDefaultSigningContext(store)
	sctx.Canonicalizer = dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")
	sctx.IdAttribute = idAttr
	if err := sctx.SetSignatureMethod(dsig.RSASHA1SignatureMethod); err != nil {
		return nil, fmt.Errorf("signature method: %w", err)
	}
	return &Signer{sctx: sctx, cert: cert}, nil
}

// Sign returns a copy of root with a Signature element appended as its last
// child. The root must carry the id anchor attribute; without it the
// reference cannot be built and signing fails.
func (s *Signer) Sign(root *etree.Element) (*etree.Element, error) {
	signed, err := s.sctx.SignEnveloped(root)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	return signed, nil
}

// Certificate returns the public half of the signing pair, e.g. for setting
// up a verification context in tests.
func (s *Signer) Certificate() *x509.Certificate { return s.cert }
