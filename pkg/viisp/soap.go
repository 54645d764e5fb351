// pkg/viisp/soap.go
package viisp

import (
	"encoding/xml"

	"github.com/beevik/etree"
)

const soapNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// newEnvelope wraps a signed request document as the sole child of a SOAP
// 1.1 Body, with an empty Header alongside it.
func newEnvelope(signed *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", soapNamespace)
	env.CreateElement("soapenv:Header")
	env.CreateElement("soapenv:Body").AddChild(signed)
	return doc
}

// soapEnvelope mirrors the response envelope. Unknown body elements are
// ignored on purpose: the provider's schema evolves independently.
type soapEnvelope struct {
	XMLName xml.Name  `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    *soapBody `xml:"Body"`
}

// soapBody enumerates every payload the provider is known to return. Which
// field an operation expects is bound statically at the call site, never
// guessed from element order.
type soapBody struct {
	AuthenticationResponse     *AuthenticationResponse     `xml:"http://www.epaslaugos.lt/services/authentication authenticationResponse"`
	AuthenticationDataResponse *AuthenticationDataResponse `xml:"http://www.epaslaugos.lt/services/authentication authenticationDataResponse"`
	Fault                      *Fault                      `xml:"Fault"`
}
