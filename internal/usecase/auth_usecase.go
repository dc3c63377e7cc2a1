package usecase

import (
	"context"
	"errors"
	"strings"

	"mentorhub/internal/pkg/jwt"
	"mentorhub/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (repository.Account, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type Auth struct {
	accounts repository.AccountRepository
	jwt      jwt.Service
	logger   *zap.Logger
}

func NewAuthUsecase(accounts repository.AccountRepository, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{accounts: accounts, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (repository.Account, TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return repository.Account{}, TokenPair{}, ErrInvalidCredentials
	}

	acct, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return repository.Account{}, TokenPair{}, ErrInvalidCredentials
		}
		u.logger.Error("account lookup failed", zap.Error(err))
		return repository.Account{}, TokenPair{}, ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.Password)) != nil {
		return repository.Account{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := u.issueTokens(acct)
	if err != nil {
		return repository.Account{}, TokenPair{}, ErrInternal
	}

	acct.PasswordHash = ""
	return acct, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}

	// Capabilities are re-read on refresh so a revoked admin loses the gate
	// at the next token rotation.
	acct, err := u.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		u.logger.Error("account lookup failed", zap.Error(err))
		return TokenPair{}, ErrInternal
	}

	pair, err := u.issueTokens(acct)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return pair, nil
}

func (u *Auth) issueTokens(acct repository.Account) (TokenPair, error) {
	caps := make([]string, 0, len(acct.Capabilities))
	for _, c := range acct.Capabilities {
		caps = append(caps, string(c))
	}

	access, err := u.jwt.GenerateAccessToken(acct.ID, acct.Email, caps)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := u.jwt.GenerateRefreshToken(acct.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
