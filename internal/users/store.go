// internal/users/store.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"viispgw/pkg/viisp"
)

// ErrNotFound reports a lookup that matched no stored user.
var ErrNotFound = errors.New("user not found")

// User is one stored identity. JSON keys match the outward API contract.
type User struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	PersonalCode *int64     `json:"ak,omitempty"`
	Name         string     `json:"name,omitempty"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Address      string     `json:"address,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phoneNumber,omitempty"`
	Country      string     `json:"country,omitempty"`
	// Verified rows were confirmed manually and are never overwritten by
	// provider data.
	Verified bool `json:"real"`
}

// ValidPersonalCode bounds the Lithuanian national identifier to its
// 11-digit range.
func ValidPersonalCode(code int64) bool {
	return code > 10_000_000_000 && code < 100_000_000_000
}

// Store persists authenticated identities and their login events.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.SugaredLogger
}

func NewStore(pool *pgxpool.Pool, log *zap.SugaredLogger) *Store {
	return &Store{pool: pool, log: log}
}

// EnsureSchema creates the required tables if they do not already exist.
// Safe to call repeatedly (idempotent).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS auth_users (
  user_id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
  personal_code bigint UNIQUE,
  name text,
  first_name text,
  last_name text,
  address text,
  email text,
  phone text,
  country text,
  verified boolean NOT NULL DEFAULT false,
  created_at timestamptz NOT NULL DEFAULT NOW(),
  updated_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS auth_logins (
  id BIGSERIAL PRIMARY KEY,
  user_id uuid REFERENCES auth_users(user_id) ON DELETE CASCADE,
  app text,
  provider text,
  logged_at timestamptz NOT NULL DEFAULT NOW(),
  data jsonb
);
`)
	return err
}

const selectUser = `SELECT user_id, personal_code, name, first_name, last_name, address, email, phone, country, verified FROM auth_users`

// Login upserts the identity carried by a fresh provider record, stamps the
// assigned id onto it and appends a login event. Verified rows keep their
// stored fields. Unless the tenant exposes raw identifiers the personal
// code is blanked from the record afterwards, whatever happened here.
func (s *Store) Login(ctx context.Context, rec *viisp.UserRecord, app string, exposeCode bool) error {
	defer func() {
		if !exposeCode {
			rec.PersonalCode = ""
		}
	}()

	code, err := strconv.ParseInt(rec.PersonalCode, 10, 64)
	if err != nil || !ValidPersonalCode(code) {
		// Foreign identifiers (eIDAS and the like) have no row of their own.
		s.log.Debugw("login not persisted", "app", app, "provider", rec.Provider)
		return nil
	}

	name := rec.Name
	if name == "" && rec.LastName != "" && rec.FirstName != "" {
		name = rec.LastName + ", " + rec.FirstName
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx, `
INSERT INTO auth_users (personal_code, name, first_name, last_name, address, email, phone, country)
VALUES ($1, NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), NULLIF($8,''))
ON CONFLICT (personal_code) DO UPDATE SET
  name       = CASE WHEN auth_users.verified THEN auth_users.name       ELSE COALESCE(EXCLUDED.name, auth_users.name) END,
  first_name = CASE WHEN auth_users.verified THEN auth_users.first_name ELSE COALESCE(EXCLUDED.first_name, auth_users.first_name) END,
  last_name  = CASE WHEN auth_users.verified THEN auth_users.last_name  ELSE COALESCE(EXCLUDED.last_name, auth_users.last_name) END,
  address    = CASE WHEN auth_users.verified THEN auth_users.address    ELSE COALESCE(EXCLUDED.address, auth_users.address) END,
  email      = CASE WHEN auth_users.verified THEN auth_users.email      ELSE COALESCE(EXCLUDED.email, auth_users.email) END,
  phone      = CASE WHEN auth_users.verified THEN auth_users.phone      ELSE COALESCE(EXCLUDED.phone, auth_users.phone) END,
  country    = CASE WHEN auth_users.verified THEN auth_users.country    ELSE COALESCE(EXCLUDED.country, auth_users.country) END,
  updated_at = NOW()
RETURNING user_id`,
		code, name, rec.FirstName, rec.LastName, rec.Address, rec.Email, rec.Phone, rec.Country,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("user login upsert: %w", err)
	}
	rec.ID = &id

	data, _ := json.Marshal(rec)
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO auth_logins (user_id, app, provider, data) VALUES ($1,$2,$3,$4)`,
		id, app, rec.Provider, data); err != nil {
		s.log.Errorw("login event insert failed", "err", err)
	}
	return nil
}

// Create inserts or refreshes a user record supplied by an integration.
// An existing verified row wins over the submitted data and is returned
// unchanged.
func (s *Store) Create(ctx context.Context, u *User, exposeCode bool) (*User, error) {
	if u.PersonalCode == nil || !ValidPersonalCode(*u.PersonalCode) {
		return nil, fmt.Errorf("personal code outside accepted range")
	}
	if u.FirstName == "" || u.LastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	if u.Name == "" {
		u.Name = u.LastName + ", " + u.FirstName
	}

	curr, err := s.GetByCode(ctx, *u.PersonalCode, exposeCode)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if curr != nil && curr.Verified {
		return curr, nil
	}

	_, err = s.pool.Exec(ctx, `
INSERT INTO auth_users (personal_code, name, first_name, last_name, address, email, phone, country)
VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), NULLIF($7,''), NULLIF($8,''))
ON CONFLICT (personal_code) DO UPDATE SET
  name       = EXCLUDED.name,
  first_name = EXCLUDED.first_name,
  last_name  = EXCLUDED.last_name,
  address    = COALESCE(EXCLUDED.address, auth_users.address),
  email      = COALESCE(EXCLUDED.email, auth_users.email),
  phone      = COALESCE(EXCLUDED.phone, auth_users.phone),
  country    = COALESCE(EXCLUDED.country, auth_users.country),
  updated_at = NOW()`,
		*u.PersonalCode, u.Name, u.FirstName, u.LastName, u.Address, u.Email, u.Phone, u.Country)
	if err != nil {
		return nil, fmt.Errorf("user upsert: %w", err)
	}
	return s.GetByCode(ctx, *u.PersonalCode, exposeCode)
}

// GetByID fetches a user by its UUID.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID, exposeCode bool) (*User, error) {
	return s.get(ctx, selectUser+` WHERE user_id=$1`, id, exposeCode)
}

// GetByCode fetches a user by its national personal code.
func (s *Store) GetByCode(ctx context.Context, code int64, exposeCode bool) (*User, error) {
	return s.get(ctx, selectUser+` WHERE personal_code=$1`, code, exposeCode)
}

func (s *Store) get(ctx context.Context, query string, arg any, exposeCode bool) (*User, error) {
	var (
		u                                                   User
		name, fname, lname, address, email, phone, country *string
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.PersonalCode, &name, &fname, &lname, &address, &email, &phone, &country, &u.Verified)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	u.Name = deref(name)
	u.FirstName = deref(fname)
	u.LastName = deref(lname)
	u.Address = deref(address)
	u.Email = deref(email)
	u.Phone = deref(phone)
	u.Country = deref(country)
	if !exposeCode {
		u.PersonalCode = nil
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
