package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/auth"
)

type fakeUserStore struct {
	users       map[int64]*models.User
	nextID      int64
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	f.createCalls++
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	return nil
}

func (f *fakeUserStore) AddRole(ctx context.Context, userID int64, role models.Role) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Roles = append(u.Roles, role)
	return nil
}

type storedToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	t, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiresAt, t.revoked, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthFixture() (AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	return NewAuthService(users, tokens, testJWTService()), users, tokens
}

func validRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     "admin@stjoseph.ac.ke",
		Password:  "s3cret-password",
		FirstName: "Jane",
		LastName:  "Barasa",
		Phone:     "+254712345678",
	}
}

func TestRegister(t *testing.T) {
	svc, users, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "admin@stjoseph.ac.ke", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-password", user.Password, "password must be stored hashed")
	assert.Empty(t, user.Roles, "new accounts carry no role until institution setup")
	assert.Equal(t, 1, users.createCalls)
}

func TestRegister_ValidationFailureNeverHitsStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"short password", func(r *dto.RegisterRequest) { r.Password = "short" }},
		{"missing name", func(r *dto.RegisterRequest) { r.FirstName = "" }},
		{"bad phone", func(r *dto.RegisterRequest) { r.Phone = "0712345678" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newAuthFixture()

			req := validRegistration()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)

			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Zero(t, users.createCalls)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Admin@StJoseph.ac.ke",
		Password: "s3cret-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, "admin@stjoseph.ac.ke", resp.User.Email)
	assert.Contains(t, tokens.tokens, resp.Token.RefreshToken)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stjoseph.ac.ke",
		Password: "not-the-password",
	})
	_, errUnknownEmail := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@stjoseph.ac.ke",
		Password: "s3cret-password",
	})

	// Both failures must be indistinguishable to the caller
	assert.ErrorIs(t, errWrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, users, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	users.users[user.ID].IsActive = false

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stjoseph.ac.ke",
		Password: "s3cret-password",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshToken_RotatesAndRevokes(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stjoseph.ac.ke",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(context.Background(), resp.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Token.RefreshToken, rotated.RefreshToken)

	// The old token is revoked by the rotation
	_, err = svc.RefreshToken(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshToken_Expired(t *testing.T) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	svc := NewAuthService(users, tokens, testJWTService())

	user := &models.User{Email: "admin@stjoseph.ac.ke", IsActive: true}
	require.NoError(t, users.CreateUser(context.Background(), user))
	require.NoError(t, tokens.CreateToken(context.Background(), "stale", user.ID, time.Now().Add(-time.Minute)))

	_, err := svc.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestLogout_UnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	err := svc.Logout(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		FirstName: "Janet",
		LastName:  "Barasa",
		Phone:     "+254722000111",
	})

	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "+254722000111", updated.Phone)
}

func TestUpdateProfile_BadPhone(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		FirstName: "Janet",
		LastName:  "Barasa",
		Phone:     "0722000111",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
