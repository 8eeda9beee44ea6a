// Package auth implements the session provider for the livestock logbook API:
// staff sign-in, bearer-token verification, and the request-scoped identity
// stamped on records created through the hosted store.
//
// Tokens are HS256 JWTs. In demo mode (paired with the offline store) any
// credentials sign in as the fixed demo user, mirroring how the offline
// snapshot accepts every visitor.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by SignIn when the email/password pair
// does not match the configured staff credential.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned by Verify for a missing, malformed, or expired
// bearer token. Handlers should map this to HTTP 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// demoUser is the fixed identity used by demo mode and stamped on records
// written through the offline store.
var demoUser = User{
	ID:    uuid.MustParse("6f1c2a9e-0b7d-4c43-9a1e-2d8f5f3d0c11"),
	Email: "demo@tanchoice.com",
}

// User is the authenticated staff identity carried in the session token.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims are the custom claims embedded in every session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens.
type Service struct {
	secret       []byte
	staffEmail   string
	passwordHash string // bcrypt hash of the staff password
	demoMode     bool
	tokenTTL     time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewService constructs a Service. staffEmail and passwordHash are ignored
// when demoMode is true.
func NewService(secret, staffEmail, passwordHash string, demoMode bool) *Service {
	return &Service{
		secret:       []byte(secret),
		staffEmail:   staffEmail,
		passwordHash: passwordHash,
		demoMode:     demoMode,
		tokenTTL:     24 * time.Hour,
		now:          time.Now,
	}
}

// SignIn checks the credentials and returns a fresh session.
// In demo mode any credentials are accepted and the demo user is returned;
// otherwise the email must match the configured staff account and the
// password must verify against its bcrypt hash.
func (s *Service) SignIn(email, password string) (Session, error) {
	var user User
	if s.demoMode {
		user = demoUser
		if email != "" {
			user.Email = email
		}
	} else {
		if email != s.staffEmail {
			return Session{}, fmt.Errorf("auth.Service.SignIn: %w", ErrInvalidCredentials)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
			return Session{}, fmt.Errorf("auth.Service.SignIn: %w", ErrInvalidCredentials)
		}
		// Identity is derived from the email so it is stable across restarts
		// without a user table.
		user = User{
			ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)),
			Email: email,
		}
	}

	expires := s.now().Add(s.tokenTTL)
	claims := Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("auth.Service.SignIn: sign token: %w", err)
	}

	return Session{Token: token, User: user, ExpiresAt: expires}, nil
}

// Verify parses and validates a bearer token and returns the user it carries.
func (s *Service) Verify(tokenStr string) (User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return User{}, fmt.Errorf("auth.Service.Verify: %w", ErrInvalidToken)
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return User{}, fmt.Errorf("auth.Service.Verify: %w", ErrInvalidToken)
	}
	return User{ID: id, Email: claims.Email}, nil
}

// ctxKey is unexported so only this package can fabricate context values.
type ctxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the authenticated user set by the bearer
// middleware, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}

// UserIDFromContext returns the authenticated user's ID, or nil when the
// context carries no user. Repos use this to stamp user_id on created rows.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	u, ok := UserFromContext(ctx)
	if !ok {
		return nil
	}
	id := u.ID
	return &id
}
