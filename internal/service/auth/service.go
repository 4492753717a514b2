package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/jwt"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
)

// TreasurerCredential is the single treasurer account configured at boot.
type TreasurerCredential struct {
	Email        string
	PasswordHash string
}

type AuthServiceImpl struct {
	store      *repository.Store
	verifier   auth.CredentialVerifier
	jwtService jwt.Service
	employees  employee.EmployeeService
	treasurer  TreasurerCredential
}

func NewAuthService(
	st *repository.Store,
	verifier auth.CredentialVerifier,
	jwtService jwt.Service,
	employees employee.EmployeeService,
	treasurer TreasurerCredential,
) auth.AuthService {
	treasurer.Email = strings.ToLower(strings.TrimSpace(treasurer.Email))
	return &AuthServiceImpl{
		store:      st,
		verifier:   verifier,
		jwtService: jwtService,
		employees:  employees,
		treasurer:  treasurer,
	}
}

func (s *AuthServiceImpl) LoginTreasurer(ctx context.Context, req auth.TreasurerLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if strings.ToLower(strings.TrimSpace(req.Email)) != s.treasurer.Email {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := s.verifier.Verify(s.treasurer.PasswordHash, req.Password); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(auth.RoleTreasurer, "", "")
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	slog.Info("treasurer logged in")
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 auth.RoleTreasurer,
	}, nil
}

func (s *AuthServiceImpl) AuthenticateEmployee(ctx context.Context, req auth.EmployeeLoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	key := employee.NormalizeKey(req.Name)

	var stored string
	err := s.store.View(ctx, func(doc *store.Document) error {
		e, ok := doc.Employees.Get(key)
		if !ok {
			return auth.ErrInvalidCredentials
		}
		stored = e.Password
		return nil
	})
	if err != nil {
		return "", err
	}
	if err := s.verifier.Verify(stored, req.Password); err != nil {
		return "", auth.ErrInvalidCredentials
	}

	if s.verifier.NeedsRehash(stored) {
		s.rehash(ctx, key, stored, req.Password)
	}
	return key, nil
}

// rehash upgrades a legacy credential in place. Failure leaves the old one usable.
func (s *AuthServiceImpl) rehash(ctx context.Context, key, stored, password string) {
	hash, err := s.verifier.Hash(password)
	if err != nil {
		slog.Warn("failed to rehash credential", "employee", key, "error", err)
		return
	}
	err = s.store.Update(ctx, func(doc *store.Document) error {
		e, ok := doc.Employees.Get(key)
		if !ok || e.Password != stored {
			return nil
		}
		e.Password = hash
		return nil
	})
	if err != nil {
		slog.Warn("failed to rehash credential", "employee", key, "error", err)
		return
	}
	slog.Info("credential rehashed", "employee", key)
}

func (s *AuthServiceImpl) LoginEmployee(ctx context.Context, req auth.EmployeeLoginRequest) (auth.TokenResponse, error) {
	key, err := s.AuthenticateEmployee(ctx, req)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return s.employeeToken(ctx, key)
}

func (s *AuthServiceImpl) RegisterEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (auth.TokenResponse, error) {
	created, err := s.employees.CreateEmployee(ctx, req)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	slog.Info("employee registered", "employee", created.Key)
	return s.employeeToken(ctx, created.Key)
}

// credentialStamp reads the stamp of the credential currently stored for key.
func (s *AuthServiceImpl) credentialStamp(ctx context.Context, key string) (string, error) {
	var stamp string
	err := s.store.View(ctx, func(doc *store.Document) error {
		e, ok := doc.Employees.Get(key)
		if !ok || e == nil {
			return employee.ErrEmployeeNotFound
		}
		stamp = auth.CredentialStamp(e.Password)
		return nil
	})
	return stamp, err
}

func (s *AuthServiceImpl) employeeToken(ctx context.Context, key string) (auth.TokenResponse, error) {
	stamp, err := s.credentialStamp(ctx, key)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	token, expiresAt, err := s.jwtService.GenerateAccessToken(auth.RoleEmployee, key, stamp)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 auth.RoleEmployee,
		EmployeeKey:          key,
		Name:                 employee.DisplayName(key),
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, session auth.Session) error {
	if session.TokenID == "" {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(session.TokenID, session.ExpiresAt)
	return nil
}

func (s *AuthServiceImpl) ValidateSession(ctx context.Context, session auth.Session) error {
	if session.Role != auth.RoleEmployee {
		return nil
	}
	stamp, err := s.credentialStamp(ctx, session.EmployeeKey)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stamp), []byte(session.Stamp)) != 1 {
		return auth.ErrInvalidToken
	}
	return nil
}
