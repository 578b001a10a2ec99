package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Principal holds identity extracted from a validated token.
type Principal struct {
	PractitionerID string
	Name           string
	Roles          []string
	Claims         jwt.MapClaims
}

var (
	ErrNoToken       = errors.New("no token provided")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("invalid issuer")
	ErrMissingSub    = errors.New("missing sub claim")
)

// Verifier issues and validates session tokens for practitioner accounts.
type Verifier struct {
	cfg Config
}

// NewVerifier constructs a verifier with config.
func NewVerifier(cfg Config) *Verifier {
	return &Verifier{cfg: cfg}
}

// IssueToken signs a session token for a practitioner.
func (v *Verifier) IssueToken(practitionerID, name string, roles []string) (string, error) {
	now := jwt.TimeFunc()
	claims := jwt.MapClaims{
		"sub":   practitionerID,
		"name":  name,
		"roles": roles,
		"iss":   v.cfg.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(v.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(v.cfg.Secret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseAndVerifyToken verifies a bearer token, validates issuer/exp and returns Principal.
func (v *Verifier) ParseAndVerifyToken(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}
	tokenString = strings.TrimSpace(tokenString)
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// enforce HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(v.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	// issuer
	if iss, _ := claims["iss"].(string); iss != v.cfg.Issuer {
		return nil, ErrInvalidIssuer
	}
	// exp
	if !claims.VerifyExpiresAt(jwt.TimeFunc().Unix(), true) {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingSub
	}

	name, _ := claims["name"].(string)

	var roles []string
	if rr, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rr {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	return &Principal{
		PractitionerID: sub,
		Name:           name,
		Roles:          roles,
		Claims:         claims,
	}, nil
}
