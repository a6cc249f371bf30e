package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/payfolio/payslip-backend-go/internal/domain/auth"
	"github.com/payfolio/payslip-backend-go/internal/domain/user"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
	"github.com/payfolio/payslip-backend-go/internal/pkg/jwt"
	"github.com/payfolio/payslip-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens generates an access/refresh pair and stores the refresh token
// inside one transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	exists, err := a.UserRepository.ExistsByEmail(ctx, registerReq.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, auth.ErrEmailAlreadyExists
	}

	hashedPassword, err := a.hashPassword(registerReq.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Email:        registerReq.Email,
		PasswordHash: &hashedPassword,
	}
	userData, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		if err == user.ErrUserEmailExists {
			return auth.TokenResponse{}, auth.ErrEmailAlreadyExists
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return a.issueTokens(ctx, userData, sessionTrackReq)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if err == user.ErrUserNotFound || err == pgx.ErrNoRows {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.HasPassword() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, sessionTrackReq)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, googleEmail)
	if err != nil {
		if err != user.ErrUserNotFound && err != pgx.ErrNoRows {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
		}
	}

	// First Google login creates the account.
	if userData.ID == "" {
		provider := "google"
		newUser := user.User{
			Email:           googleEmail,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
			EmailVerified:   true,
		}
		userData, err = a.UserRepository.Create(ctx, newUser)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	}

	// Existing password account, first time via Google: link it.
	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	}

	return a.issueTokens(ctx, userData, sessionTrackReq)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		_, isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(txCtx, token)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.JWTRepository.RevokeRefreshToken(txCtx, token); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	// 1. Verify JWT signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check DB for revocation/expiry (pass raw token, not hash)
	userID, isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Get user
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	// 5. Generate new access token
	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.Service.GenerateAccessToken(userData.ID, userData.Email)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}
