// Package auth issues and verifies the bearer tokens that gate every
// mutating endpoint.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harsha-bonthu/pt2/internal/apperror"
	"github.com/Harsha-bonthu/pt2/internal/config"
)

const TokenType = "bearer"

var (
	errMissingToken = apperror.New(apperror.CodeUnauthenticated, "missing bearer token")
	errInvalidToken = apperror.New(apperror.CodeUnauthenticated, "could not validate credentials")
	errBadLogin     = apperror.New(apperror.CodeUnauthenticated, "incorrect username or password")
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Gate struct {
	secret       []byte
	ttl          time.Duration
	username     string
	passwordHash []byte
	now          func() time.Time
}

// NewGate keeps only a bcrypt hash of the configured admin password.
func NewGate(cfg config.Config) (*Gate, error) {
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &Gate{
		secret:       []byte(cfg.TokenSecret),
		ttl:          cfg.TokenTTL,
		username:     cfg.AdminUsername,
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

func (g *Gate) Login(username, password string) (Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return Token{}, errBadLogin
	}

	signed, err := g.IssueToken(username)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, TokenType: TokenType}, nil
}

func (g *Gate) IssueToken(username string) (string, error) {
	issuedAt := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(g.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the subject of a valid, unexpired HS256 token.
func (g *Gate) VerifyToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}
