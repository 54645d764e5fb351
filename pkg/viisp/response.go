// pkg/viisp/response.go
package viisp

// Synthetic fault codes produced locally when the provider's answer cannot
// be resolved into the expected payload. Provider-issued faults pass through
// with their own code/message.
const (
	faultCodeEmpty  = "soap:Empty"
	faultCodeFormat = "soap:Format"
	faultCodeError  = "soap:Error"
)

// Fault is a protocol-level error: either a SOAP fault returned by the
// provider or a locally synthesized one. It rides on the typed responses,
// mutually exclusive with their payload fields.
type Fault struct {
	Code    string `xml:"faultcode" json:"code"`
	Message string `xml:"faultstring" json:"message"`
}

func (f *Fault) Error() string { return f.Code + ": " + f.Message }

func faultf(code, message string) *Fault { return &Fault{Code: code, Message: message} }

// AuthenticationResponse is the result of the start-authentication
// operation. On success Ticket names the pending attempt.
type AuthenticationResponse struct {
	ID     string `xml:"id,attr"`
	Ticket string `xml:"ticket"`

	Error *Fault `xml:"-"`
}

func (r *AuthenticationResponse) setFault(f *Fault) { r.Error = f }

// AuthenticationDataResponse is the provider's raw answer to the
// fetch-authentication-data operation. Its three name/value bags are
// flattened by NewUserRecord.
type AuthenticationDataResponse struct {
	ID                       string                    `xml:"id,attr"`
	Ticket                   string                    `xml:"ticket"`
	AuthenticationProvider   string                    `xml:"authenticationProvider"`
	UserInformation          []UserInformation         `xml:"userInformation"`
	AuthenticationAttributes []AuthenticationAttribute `xml:"authenticationAttribute"`
	SourceData               *SourceData               `xml:"sourceData"`

	Error *Fault `xml:"-"`
}

func (r *AuthenticationDataResponse) setFault(f *Fault) { r.Error = f }

// UserInformation is one entry of the user-information bag; its value is
// either a string or a date, never both.
type UserInformation struct {
	Name  string           `xml:"information"`
	Value InformationValue `xml:"value"`
}

type InformationValue struct {
	String string `xml:"stringValue"`
	Date   string `xml:"dateValue"`
}

// AuthenticationAttribute is one entry of the authentication-attribute bag.
type AuthenticationAttribute struct {
	Name  string `xml:"attribute"`
	Value string `xml:"value"`
}

// SourceData carries the legacy parameter bag forwarded verbatim from the
// upstream authentication provider (bank interfaces, certificates).
type SourceData struct {
	Type       string                `xml:"type"`
	Parameters []SourceDataParameter `xml:"parameter"`
}

type SourceDataParameter struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}
