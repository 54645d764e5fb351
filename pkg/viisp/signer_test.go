// pkg/viisp/signer_test.go
package viisp_test

import (
	"crypto/x509"
	"testing"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viispgw/pkg/viisp"
	"viispgw/pkg/viisp/viisptest"
)

func testRequestRoot() *etree.Element {
	root := etree.NewElement("auth:authenticationRequest")
	root.CreateAttr("xmlns:auth", viisp.AuthNamespace)
	root.CreateAttr("id", "uniqueNodeId")
	root.CreateElement("auth:pid").SetText("test-party")
	root.CreateElement("auth:postbackUrl").SetText("https://relying.example/postback")
	return root
}

func validationContext(s *viisp.Signer) *dsig.ValidationContext {
	vctx := dsig.NewDefaultValidationContext(&dsig.MemoryX509CertificateStore{
		Roots: []*x509.Certificate{s.Certificate()},
	})
	vctx.IdAttribute = "id"
	return vctx
}

func TestNewSigner_InvalidBundle(t *testing.T) {
	_, err := viisp.NewSigner("not base64!!", "pass")
	require.Error(t, err)

	_, err = viisp.NewSigner("AAAA", "pass")
	require.Error(t, err)
}

func TestNewSigner_WrongPassphrase(t *testing.T) {
	_, err := viisp.NewSigner(viisptest.Bundle, "wrong")
	require.Error(t, err)
}

func TestNewSigner_Fixture(t *testing.T) {
	s, err := viisp.NewSigner(viisptest.Bundle, viisptest.Passphrase)
	require.NoError(t, err)
	require.NotNil(t, s.Certificate())
}

func TestSigner_Sign_Shape(t *testing.T) {
	s := viisptest.NewSigner(t)

	signed, err := s.Sign(testRequestRoot())
	require.NoError(t, err)

	children := signed.ChildElements()
	require.NotEmpty(t, children)
	last := children[len(children)-1]
	assert.Equal(t, "Signature", last.Tag, "signature must be the last child of the signed root")

	sigMethod := signed.FindElement("./ds:Signature/ds:SignedInfo/ds:SignatureMethod")
	require.NotNil(t, sigMethod)
	assert.Equal(t, "http://www.w3.org/2000/09/xmldsig#rsa-sha1", sigMethod.SelectAttrValue("Algorithm", ""))

	c14n := signed.FindElement("./ds:Signature/ds:SignedInfo/ds:CanonicalizationMethod")
	require.NotNil(t, c14n)
	assert.Equal(t, "http://www.w3.org/2001/10/xml-exc-c14n#", c14n.SelectAttrValue("Algorithm", ""))

	digest := signed.FindElement("./ds:Signature/ds:SignedInfo/ds:Reference/ds:DigestMethod")
	require.NotNil(t, digest)
	assert.Equal(t, "http://www.w3.org/2000/09/xmldsig#sha1", digest.SelectAttrValue("Algorithm", ""))

	ref := signed.FindElement("./ds:Signature/ds:SignedInfo/ds:Reference")
	require.NotNil(t, ref)
	assert.Equal(t, "#uniqueNodeId", ref.SelectAttrValue("URI", ""))
}

func TestSigner_Sign_Verifies(t *testing.T) {
	s := viisptest.NewSigner(t)

	signed, err := s.Sign(testRequestRoot())
	require.NoError(t, err)

	_, err = validationContext(s).Validate(signed)
	require.NoError(t, err)
}

func TestSigner_Sign_MutationInvalidates(t *testing.T) {
	s := viisptest.NewSigner(t)

	signed, err := s.Sign(testRequestRoot())
	require.NoError(t, err)

	pid := signed.FindElement("./auth:pid")
	require.NotNil(t, pid)
	pid.SetText("tampered-party")

	_, err = validationContext(s).Validate(signed)
	require.Error(t, err)
}

func TestSigner_Sign_MissingAnchor(t *testing.T) {
	s := viisptest.NewSigner(t)

	root := etree.NewElement("auth:authenticationRequest")
	root.CreateAttr("xmlns:auth", viisp.AuthNamespace)

	_, err := s.Sign(root)
	require.Error(t, err)
}
