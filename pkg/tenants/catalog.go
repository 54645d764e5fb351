package tenants

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"viispgw/pkg/viisp"
)

// Catalog is the backing configuration source for the registry: three
// independent maps joined by name reference, plus global defaults.
type Catalog struct {
	// ReloadSeconds sets how long a built snapshot is served before the
	// catalogs are re-read. Zero means the 300s default.
	ReloadSeconds int `yaml:"reload_seconds"`

	SubmitURL string `yaml:"submit_url"`
	TicketURL string `yaml:"ticket_url"`

	Certificates map[string]CertificateEntry          `yaml:"certificates"`
	Templates    map[string]viisp.AuthenticationRequest `yaml:"templates"`
	Applications map[string]ApplicationEntry          `yaml:"applications"`
}

// CertificateEntry is a base64 PKCS#12 bundle plus its passphrase.
type CertificateEntry struct {
	Bundle     string `yaml:"cert"`
	Passphrase string `yaml:"passphrase"`
}

// ApplicationEntry declares one integration. Certificate and Template are
// name references into the sibling catalogs; empty references resolve to
// "Default".
type ApplicationEntry struct {
	Secret      string `yaml:"secret"`
	Certificate string `yaml:"certificate"`
	Template    string `yaml:"template"`
	PartyID     string `yaml:"party_id"`
	PostbackURL string `yaml:"postback_url"`
	SubmitURL   string `yaml:"submit_url"`
	TicketURL   string `yaml:"ticket_url"`

	AllowLegacyFlow     bool `yaml:"allow_legacy_flow"`
	ExposeRawIdentifier bool `yaml:"expose_raw_identifier"`
	AllowUserLookup     bool `yaml:"allow_user_lookup"`
}

// Source loads the catalog; the registry re-invokes it on every reload.
type Source interface {
	Load() (*Catalog, error)
}

// FileSource reads the catalog from a YAML file on disk.
type FileSource struct {
	Path string
}

func (f FileSource) Load() (*Catalog, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read tenant catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse tenant catalog %s: %w", f.Path, err)
	}
	return &cat, nil
}
