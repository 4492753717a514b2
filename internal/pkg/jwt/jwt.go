package jwt

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(role auth.Role, employeeKey string, stamp string) (token string, expiresAt int64, err error)
	// ParseAccessToken verifies a raw token and checks it has not been revoked
	ParseAccessToken(ctx context.Context, tokenString string) (auth.Session, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(tokenID string, expiresAt int64)
	IsTokenRevoked(tokenID string) bool
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	expDuration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpiration: expDuration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(role auth.Role, employeeKey string, stamp string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"jti":  uuid.NewString(),
		"role": string(role),
		"type": "access",
		"exp":  expiresAt,
	}
	if employeeKey != "" {
		claims["employee_key"] = employeeKey
	}
	if stamp != "" {
		claims["stamp"] = stamp
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseAccessToken(ctx context.Context, tokenString string) (auth.Session, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return auth.Session{}, auth.ErrInvalidToken
	}
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.Session{}, auth.ErrInvalidToken
	}
	session, err := SessionFromClaims(claims)
	if err != nil {
		return auth.Session{}, err
	}
	if j.IsTokenRevoked(session.TokenID) {
		return auth.Session{}, auth.ErrInvalidToken
	}
	return session, nil
}

// SessionFromClaims reads the identity claims of an access token.
func SessionFromClaims(claims map[string]interface{}) (auth.Session, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != "access" {
		return auth.Session{}, auth.ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if role == "" || jti == "" {
		return auth.Session{}, auth.ErrInvalidToken
	}
	key, _ := claims["employee_key"].(string)
	stamp, _ := claims["stamp"].(string)
	if auth.Role(role) == auth.RoleEmployee && (key == "" || stamp == "") {
		return auth.Session{}, auth.ErrInvalidToken
	}

	var exp int64
	switch v := claims["exp"].(type) {
	case time.Time:
		exp = v.Unix()
	case float64:
		exp = int64(v)
	case int64:
		exp = v
	}
	return auth.Session{Role: auth.Role(role), EmployeeKey: key, TokenID: jti, ExpiresAt: exp, Stamp: stamp}, nil
}

// RevokeToken remembers a token id until its expiry passes.
func (j *JWTService) RevokeToken(tokenID string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for id, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[tokenID] = expiresAt
}

func (j *JWTService) IsTokenRevoked(tokenID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[tokenID]
	return revoked
}
