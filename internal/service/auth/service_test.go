package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/payfolio/payslip-backend-go/internal/domain/auth"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
	"github.com/payfolio/payslip-backend-go/internal/pkg/jwt"
	"github.com/payfolio/payslip-backend-go/internal/repository/postgresql"
)

var testAuthDB *database.DB

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func authTestInit(t *testing.T) {
	t.Helper()
	if testAuthDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testAuthDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"refresh_tokens", "users"} {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createAuthTestUser(t *testing.T, ctx context.Context, email string) string {
	var userID string
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hashedStr := string(hashedPassword)

	err := testAuthDB.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, email_verified)
		VALUES ($1, $2, true)
		RETURNING id
	`, email, hashedStr).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func newTestAuthService() auth.AuthService {
	userRepo := postgresql.NewUserRepository(testAuthDB)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	jwtRepo := postgresql.NewJWTRepository(testAuthDB)
	return NewAuthService(testAuthDB, userRepo, jwtService, jwtRepo)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("login-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, testEmail)

	authService := newTestAuthService()

	loginReq := auth.LoginRequest{Email: testEmail, Password: "password123"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	response, err := authService.Login(ctx, loginReq, sessionReq)

	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Greater(t, response.AccessTokenExpiresIn, int64(0))
	assert.Greater(t, response.RefreshTokenExpiresIn, int64(0))
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("invalidpass-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, testEmail)

	authService := newTestAuthService()

	loginReq := auth.LoginRequest{Email: testEmail, Password: "wrongpassword"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	_, err := authService.Login(ctx, loginReq, sessionReq)

	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	authService := newTestAuthService()

	loginReq := auth.LoginRequest{Email: "nonexistent@example.com", Password: "password123"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	_, err := authService.Login(ctx, loginReq, sessionReq)

	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

func TestAuthService_LoginWithGoogle_NewUser(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	userRepo := postgresql.NewUserRepository(testAuthDB)
	authService := newTestAuthService()

	googleEmail := "newgoogleuser@example.com"
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	response, err := authService.LoginWithGoogle(ctx, googleEmail, "google-id-123", sessionReq)

	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)

	// Verify user was created with the linked Google account
	createdUser, err := userRepo.GetByEmail(ctx, googleEmail)
	assert.NoError(t, err)
	assert.Equal(t, googleEmail, createdUser.Email)
	require.NotNil(t, createdUser.OAuthProvider)
	assert.Equal(t, "google", *createdUser.OAuthProvider)
	assert.Equal(t, "google-id-123", *createdUser.OAuthProviderID)
	assert.True(t, createdUser.EmailVerified)
}

func TestAuthService_LoginWithGoogle_LinksExistingAccount(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := "existinguser@example.com"
	createAuthTestUser(t, ctx, testEmail)

	userRepo := postgresql.NewUserRepository(testAuthDB)
	authService := newTestAuthService()

	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	response, err := authService.LoginWithGoogle(ctx, testEmail, "google-id-456", sessionReq)

	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)

	linked, err := userRepo.GetByEmail(ctx, testEmail)
	assert.NoError(t, err)
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-id-456", *linked.OAuthProviderID)
	assert.True(t, linked.HasPassword(), "linking must not clear the password")
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("refresh-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, testEmail)

	authService := newTestAuthService()

	loginReq := auth.LoginRequest{Email: testEmail, Password: "password123"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	loginResp, err := authService.Login(ctx, loginReq, sessionReq)
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.RefreshToken)

	refreshReq := auth.RefreshTokenRequest{RefreshToken: loginResp.RefreshToken}
	resp, err := authService.RefreshToken(ctx, refreshReq)

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("wrongtype-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, testEmail)

	authService := newTestAuthService()

	loginReq := auth.LoginRequest{Email: testEmail, Password: "password123"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	loginResp, err := authService.Login(ctx, loginReq, sessionReq)
	require.NoError(t, err)

	// An access token must not pass as a refresh token
	refreshReq := auth.RefreshTokenRequest{RefreshToken: loginResp.AccessToken}
	_, err = authService.RefreshToken(ctx, refreshReq)

	assert.Equal(t, auth.ErrInvalidToken, err)
}

func TestAuthService_Logout_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("logout-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, testEmail)

	jwtRepo := postgresql.NewJWTRepository(testAuthDB)
	authService := newTestAuthService()

	loginReq := auth.LoginRequest{Email: testEmail, Password: "password123"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	loginResp, err := authService.Login(ctx, loginReq, sessionReq)
	require.NoError(t, err)

	err = authService.Logout(ctx, loginResp.RefreshToken)
	assert.NoError(t, err)

	_, isRevoked, err := jwtRepo.IsRefreshTokenRevoked(ctx, loginResp.RefreshToken)
	assert.NoError(t, err)
	assert.True(t, isRevoked)

	// Refreshing with a revoked token must fail
	_, err = authService.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: loginResp.RefreshToken})
	assert.Equal(t, auth.ErrRefreshTokenRevoked, err)
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("newuser-%d@example.com", time.Now().UnixNano())
	authService := newTestAuthService()

	registerReq := auth.RegisterRequest{
		Email:           testEmail,
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
	}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	resp, err := authService.Register(ctx, registerReq, sessionReq)

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	var userCount int
	err = testAuthDB.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, testEmail).Scan(&userCount)
	assert.NoError(t, err)
	assert.Equal(t, 1, userCount)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	testEmail := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	createAuthTestUser(t, ctx, testEmail)

	authService := newTestAuthService()

	registerReq := auth.RegisterRequest{
		Email:           testEmail,
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
	}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	_, err := authService.Register(ctx, registerReq, sessionReq)

	assert.Equal(t, auth.ErrEmailAlreadyExists, err)
}
