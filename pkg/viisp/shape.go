// pkg/viisp/shape.go
package viisp

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// UserRecord is the flat, application-facing view of one authenticated
// identity. JSON keys match the outward API contract, including the
// provider's hyphenated attribute names.
type UserRecord struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Email        string     `json:"email,omitempty"`
	Address      string     `json:"address,omitempty"`
	Phone        string     `json:"phoneNumber,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	PersonalCode string     `json:"lt-personal-code,omitempty"`
	CompanyCode  string     `json:"lt-company-code,omitempty"`
	CompanyName  string     `json:"companyName,omitempty"`
	Country      string     `json:"country,omitempty"`
	SenderID     string     `json:"sndId,omitempty"`
	ReceiverID   string     `json:"recId,omitempty"`
	Service      string     `json:"service,omitempty"`
	Language     string     `json:"language,omitempty"`
	Provider     string     `json:"provider,omitempty"`
	ProxyType    string     `json:"proxyType,omitempty"`
	ProxySource  string     `json:"proxySource,omitempty"`
}

// NewUserRecord flattens the provider's heterogeneous bags into one record.
// Mapping is by fixed name per bag; unrecognized names are dropped, since
// the provider adds fields without notice. Legacy source-data parameters
// only fill fields that are still unset.
func NewUserRecord(rsp *AuthenticationDataResponse) *UserRecord {
	rec := &UserRecord{Provider: rsp.AuthenticationProvider}

	for _, info := range rsp.UserInformation {
		switch info.Name {
		case "firstName":
			rec.FirstName = TitleCase(info.Value.String)
		case "lastName":
			rec.LastName = TitleCase(info.Value.String)
		case "address":
			rec.Address = info.Value.String
		case "email":
			rec.Email = info.Value.String
		case "phoneNumber":
			rec.Phone = info.Value.String
		case "birthday":
			rec.Birthday = parseDate(info.Value.Date)
		case "companyName":
			rec.CompanyName = info.Value.String
		case "proxyType":
			rec.ProxyType = info.Value.String
		case "proxySource":
			rec.ProxySource = info.Value.String
		}
	}

	for _, attr := range rsp.AuthenticationAttributes {
		switch attr.Name {
		case "lt-personal-code":
			rec.PersonalCode = attr.Value
		case "lt-company-code":
			rec.CompanyCode = attr.Value
		}
	}

	if rsp.SourceData != nil {
		for _, p := range rsp.SourceData.Parameters {
			switch p.Name {
			case "VK_USER_NAME":
				fillIfEmpty(&rec.Name, TitleCase(p.Value))
			case "VK_USER_ID":
				fillIfEmpty(&rec.PersonalCode, p.Value)
			case "VK_COUNTRY":
				fillIfEmpty(&rec.Country, p.Value)
			case "VK_SND_ID":
				fillIfEmpty(&rec.SenderID, p.Value)
			case "VK_REC_ID":
				fillIfEmpty(&rec.ReceiverID, p.Value)
			case "VK_LANG":
				fillIfEmpty(&rec.Language, p.Value)
			case "VK_SERVICE":
				fillIfEmpty(&rec.Service, p.Value)
			case "CN":
				fillIfEmpty(&rec.Service, p.Value)
			case "O":
				fillIfEmpty(&rec.SenderID, p.Value)
			}
		}
	}

	return rec
}

func fillIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// TitleCase lower-cases the input and re-capitalizes the first letter of
// each comma- or space-delimited token; a comma gains a following space, so
// "o'brien,jane" becomes "O'brien, Jane". Deterministic and pure.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ",", ", ")
	s = strings.ReplaceAll(s, "  ", " ")
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
