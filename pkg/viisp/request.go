// pkg/viisp/request.go
package viisp

import (
	"context"
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

const (
	// AuthNamespace is the provider's authentication service namespace.
	AuthNamespace = "http://www.epaslaugos.lt/services/authentication"

	// DefaultSubmitURL and DefaultTicketURL are the provider's production
	// endpoints, used when neither catalog defaults nor the application
	// override them.
	DefaultSubmitURL = "https://www.epaslaugos.lt/portal/authenticationServices/auth"
	DefaultTicketURL = "https://www.epaslaugos.lt/portal/external/services/authentication/v2/?ticket="
)

// Config carries the per-tenant pieces the protocol layer needs: the signing
// pair, endpoint URLs and the defaults merged into outbound requests.
type Config struct {
	Signer      *Signer
	SubmitURL   string
	TicketURL   string
	PID         string
	PostbackURL string
	Template    *AuthenticationRequest
}

// ValidationError reports a required field that is missing before
// transmission. Requests failing validation are never sent to the wire.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string { return "missing required field: " + e.Field }

// AuthenticationRequest starts an authentication attempt. Zero-value fields
// are filled from the tenant template before transmission; a field the
// caller set explicitly is kept verbatim.
//
// The yaml tags let tenant catalogs declare request templates directly.
type AuthenticationRequest struct {
	PID                           string   `yaml:"pid"`
	ServiceTargets                []string `yaml:"service_targets"`
	AuthenticationProviders       []string `yaml:"authentication_providers"`
	AuthenticationAttributes      []string `yaml:"authentication_attributes"`
	UserInformation               []string `yaml:"user_information"`
	ProxyAuthenticationAttributes []string `yaml:"proxy_authentication_attributes"`
	ProxyUserInformation          []string `yaml:"proxy_user_information"`
	PostbackURL                   string   `yaml:"postback_url"`
	CustomData                    string   `yaml:"custom_data"`
}

// DefaultTemplate returns the provider-recommended request defaults, used
// for applications whose catalog entry names no template.
func DefaultTemplate() *AuthenticationRequest {
	return &AuthenticationRequest{
		AuthenticationProviders: []string{
			"auth.lt.identity.card", "auth.lt.government.employee.card",
			"auth.lt.bank", "auth.eidas", "auth.signatureProvider",
			"auth.iltu.identity.card",
		},
		AuthenticationAttributes: []string{
			"lt-personal-code", "lt-company-code",
			"lt-government-employee-code", "eidas-eid", "iltu-personal-code",
		},
		UserInformation: []string{
			"id", "firstName", "lastName", "address", "email", "phoneNumber",
			"birthday", "companyName", "nationality", "proxyType", "proxySource",
		},
		ProxyAuthenticationAttributes: []string{
			"lt-personal-code", "lt-company-code",
			"lt-government-employee-code", "eidas-eid", "iltu-personal-code",
		},
		ProxyUserInformation: []string{
			"id", "firstName", "lastName", "address", "email", "phoneNumber",
			"birthday", "companyName", "nationality", "proxyType", "proxySource",
		},
	}
}

// mergeDefaults fills every unset field from the tenant template.
func (r *AuthenticationRequest) mergeDefaults(base *AuthenticationRequest) {
	if base == nil {
		return
	}
	if r.PID == "" {
		r.PID = base.PID
	}
	if len(r.ServiceTargets) == 0 {
		r.ServiceTargets = base.ServiceTargets
	}
	if len(r.AuthenticationProviders) == 0 {
		r.AuthenticationProviders = base.AuthenticationProviders
	}
	if len(r.AuthenticationAttributes) == 0 {
		r.AuthenticationAttributes = base.AuthenticationAttributes
	}
	if len(r.UserInformation) == 0 {
		r.UserInformation = base.UserInformation
	}
	if len(r.ProxyAuthenticationAttributes) == 0 {
		r.ProxyAuthenticationAttributes = base.ProxyAuthenticationAttributes
	}
	if len(r.ProxyUserInformation) == 0 {
		r.ProxyUserInformation = base.ProxyUserInformation
	}
	if r.PostbackURL == "" {
		r.PostbackURL = base.PostbackURL
	}
	if r.CustomData == "" {
		r.CustomData = base.CustomData
	}
}

func (r *AuthenticationRequest) validate() error {
	if r.PID == "" {
		return &ValidationError{Field: "pid"}
	}
	return nil
}

// element serializes the request in the provider's fixed element order.
func (r *AuthenticationRequest) element() *etree.Element {
	root := requestRoot("authenticationRequest")
	addText(root, "pid", r.PID)
	addList(root, "serviceTarget", r.ServiceTargets)
	addList(root, "authenticationProvider", r.AuthenticationProviders)
	addList(root, "authenticationAttribute", r.AuthenticationAttributes)
	addList(root, "userInformation", r.UserInformation)
	addList(root, "proxyAuthenticationAttribute", r.ProxyAuthenticationAttributes)
	addList(root, "proxyUserInformation", r.ProxyUserInformation)
	addText(root, "postbackUrl", r.PostbackURL)
	addText(root, "customData", r.CustomData)
	return root
}

// Execute merges tenant defaults into the request and performs the
// start-authentication operation.
func (r *AuthenticationRequest) Execute(ctx context.Context, c *Client, cfg Config) (*AuthenticationResponse, error) {
	r.mergeDefaults(cfg.Template)
	if r.PID == "" {
		r.PID = cfg.PID
	}
	if r.PostbackURL == "" {
		r.PostbackURL = cfg.PostbackURL
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return execute[AuthenticationResponse](ctx, c, cfg, r.element(),
		func(b *soapBody) *AuthenticationResponse { return b.AuthenticationResponse })
}

// AuthenticationDataRequest fetches the outcome of a completed
// authentication attempt named by a provider ticket.
type AuthenticationDataRequest struct {
	PID               string
	Ticket            uuid.UUID
	IncludeSourceData bool
}

// NewAuthenticationDataRequest builds a data request with source data
// included, matching what the flattening step expects.
func NewAuthenticationDataRequest(ticket uuid.UUID) *AuthenticationDataRequest {
	return &AuthenticationDataRequest{Ticket: ticket, IncludeSourceData: true}
}

func (r *AuthenticationDataRequest) validate() error {
	if r.PID == "" {
		return &ValidationError{Field: "pid"}
	}
	if r.Ticket == uuid.Nil {
		return &ValidationError{Field: "ticket"}
	}
	return nil
}

func (r *AuthenticationDataRequest) element() *etree.Element {
	root := requestRoot("authenticationDataRequest")
	addText(root, "pid", r.PID)
	addText(root, "ticket", r.Ticket.String())
	addText(root, "includeSourceData", strconv.FormatBool(r.IncludeSourceData))
	return root
}

// Execute fills the party id from tenant config when unset and performs the
// fetch-authentication-data operation.
func (r *AuthenticationDataRequest) Execute(ctx context.Context, c *Client, cfg Config) (*AuthenticationDataResponse, error) {
	if r.PID == "" {
		r.PID = cfg.PID
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return execute[AuthenticationDataResponse](ctx, c, cfg, r.element(),
		func(b *soapBody) *AuthenticationDataResponse { return b.AuthenticationDataResponse })
}

func requestRoot(name string) *etree.Element {
	root := etree.NewElement("auth:" + name)
	root.CreateAttr("xmlns:auth", AuthNamespace)
	root.CreateAttr(idAttr, uniqueNodeID)
	return root
}

func addText(parent *etree.Element, name, value string) {
	if value == "" {
		return
	}
	parent.CreateElement("auth:" + name).SetText(value)
}

func addList(parent *etree.Element, name string, values []string) {
	for _, v := range values {
		parent.CreateElement("auth:" + name).SetText(v)
	}
}
