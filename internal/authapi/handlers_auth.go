// internal/authapi/handlers_auth.go
package authapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"viispgw/pkg/middleware"
	"viispgw/pkg/problems"
	"viispgw/pkg/tenants"
	"viispgw/pkg/tokens"
	"viispgw/pkg/viisp"
)

// legacyTicketResponse is the v1 payload: the raw provider ticket plus the
// redirect URL built from it. Only tenants with the legacy flow enabled
// ever see a raw ticket.
type legacyTicketResponse struct {
	Ticket string `json:"ticket"`
	Host   string `json:"host"`
	URL    string `json:"url"`
}

func (a *App) legacySign(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFrom(r.Context())
	if !t.AllowLegacyFlow {
		problems.Write(w, http.StatusForbidden, "legacy-flow-disabled", "v1 flow is not enabled for this application")
		return
	}

	rsp, err := (&viisp.AuthenticationRequest{}).Execute(r.Context(), a.client, t.Viisp)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	if rsp.Error != nil {
		writeFault(w, rsp.Error)
		return
	}
	writeJSON(w, http.StatusOK, legacyTicketResponse{
		Ticket: rsp.Ticket,
		Host:   hostOf(t.Viisp.TicketURL),
		URL:    t.Viisp.TicketURL + rsp.Ticket,
	})
}

func (a *App) legacyData(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFrom(r.Context())
	if !t.AllowLegacyFlow {
		problems.Write(w, http.StatusForbidden, "legacy-flow-disabled", "v1 flow is not enabled for this application")
		return
	}
	ticket, err := uuid.Parse(r.URL.Query().Get("ticket"))
	if err != nil {
		problems.Write(w, http.StatusBadRequest, "invalid-ticket", "ticket must be a UUID")
		return
	}
	a.fetchData(w, r, t, ticket)
}

func (a *App) issueToken(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFrom(r.Context())

	// The token rides on the postback URL, so the external caller's handle
	// is known to the relying application before the provider answers.
	token := uuid.New()
	postback := t.Viisp.PostbackURL
	sep := "?"
	if strings.Contains(postback, "?") {
		sep = "&"
	}
	req := &viisp.AuthenticationRequest{
		PostbackURL: fmt.Sprintf("%s%stoken=%s", postback, sep, token),
	}

	rsp, err := req.Execute(r.Context(), a.client, t.Viisp)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	if rsp.Error != nil {
		writeFault(w, rsp.Error)
		return
	}
	ticket, err := uuid.Parse(rsp.Ticket)
	if err != nil {
		a.log.Errorw("provider returned unusable ticket", "tenant", t.Name, "ticket", rsp.Ticket)
		problems.Write(w, http.StatusBadGateway, "invalid-provider-ticket", "identity provider returned an unusable ticket")
		return
	}

	tok, err := a.broker.Issue(r.Context(), token, ticket, t.Viisp.TicketURL+rsp.Ticket)
	if err != nil {
		a.log.Errorw("token issue failed", "err", err)
		problems.Write(w, http.StatusInternalServerError, "token-store-unavailable", "could not store authentication token")
		return
	}
	a.rec.TokenIssued()
	writeJSON(w, http.StatusOK, tok)
}

func (a *App) redeemToken(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFrom(r.Context())

	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		problems.Write(w, http.StatusNotFound, "token-not-found", "token is unknown, expired, or already redeemed")
		return
	}
	ticket, err := a.broker.Redeem(r.Context(), token)
	if errors.Is(err, tokens.ErrNotFound) {
		a.rec.TokenRedemption("miss")
		problems.Write(w, http.StatusNotFound, "token-not-found", "token is unknown, expired, or already redeemed")
		return
	}
	if err != nil {
		a.log.Errorw("token redeem failed", "err", err)
		problems.Write(w, http.StatusInternalServerError, "token-store-unavailable", "could not redeem authentication token")
		return
	}
	a.rec.TokenRedemption("hit")
	a.fetchData(w, r, t, ticket)
}

// fetchData runs the fetch-authentication-data operation for a ticket,
// flattens the answer and persists the login when a user store is wired.
func (a *App) fetchData(w http.ResponseWriter, r *http.Request, t *tenants.TenantConfig, ticket uuid.UUID) {
	req := viisp.NewAuthenticationDataRequest(ticket)
	rsp, err := req.Execute(r.Context(), a.client, t.Viisp)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	if rsp.Error != nil {
		writeFault(w, rsp.Error)
		return
	}
	a.debugDump("authentication data", rsp)

	rec := viisp.NewUserRecord(rsp)
	if a.users != nil {
		if err := a.users.Login(r.Context(), rec, t.Name, t.ExposeRawIdentifier); err != nil {
			a.log.Errorw("login persist failed", "tenant", t.Name, "err", err)
		}
	} else if !t.ExposeRawIdentifier {
		rec.PersonalCode = ""
	}
	writeJSON(w, http.StatusOK, rec)
}
