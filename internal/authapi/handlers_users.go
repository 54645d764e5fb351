// internal/authapi/handlers_users.go
package authapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"viispgw/internal/users"
	"viispgw/pkg/middleware"
	"viispgw/pkg/problems"
)

func (a *App) createUser(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFrom(r.Context())
	if a.users == nil {
		problems.Write(w, http.StatusServiceUnavailable, "no-user-store", "user persistence is not configured")
		return
	}

	var u users.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		problems.Write(w, http.StatusBadRequest, "invalid-body", "request body is not a valid user record")
		return
	}
	if u.PersonalCode == nil || !users.ValidPersonalCode(*u.PersonalCode) {
		problems.Write(w, http.StatusBadRequest, "invalid-personal-code", "personal code outside accepted range")
		return
	}
	a.debugDump("user create", u)

	out, err := a.users.Create(r.Context(), &u, t.ExposeRawIdentifier)
	if err != nil {
		problems.Write(w, http.StatusBadRequest, "user-create-failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) getUser(w http.ResponseWriter, r *http.Request) {
	t := middleware.TenantFrom(r.Context())
	if !t.AllowUserLookup {
		problems.Write(w, http.StatusForbidden, "user-lookup-disabled", "user lookup is not enabled for this application")
		return
	}
	if a.users == nil {
		problems.Write(w, http.StatusServiceUnavailable, "no-user-store", "user persistence is not configured")
		return
	}

	param := chi.URLParam(r, "user")
	var (
		u   *users.User
		err error
	)
	if id, perr := uuid.Parse(param); perr == nil {
		u, err = a.users.GetByID(r.Context(), id, t.ExposeRawIdentifier)
	} else if code, perr := strconv.ParseInt(param, 10, 64); perr == nil {
		u, err = a.users.GetByCode(r.Context(), code, t.ExposeRawIdentifier)
	} else {
		problems.Write(w, http.StatusNotFound, "user-not-found", "no user matches the given identifier")
		return
	}

	if errors.Is(err, users.ErrNotFound) {
		problems.Write(w, http.StatusNotFound, "user-not-found", "no user matches the given identifier")
		return
	}
	if err != nil {
		a.log.Errorw("user lookup failed", "err", err)
		problems.Write(w, http.StatusInternalServerError, "user-lookup-failed", "user lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
