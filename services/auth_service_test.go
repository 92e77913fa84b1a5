package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillquiz/apperrors"
	"skillquiz/models"
)

func TestSignup(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	token, err := svc.Signup("Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "email", user.AuthProvider)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	_, err := svc.Signup("Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup("Other Alice", "alice@example.com", "different")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestSignupMissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	for _, tc := range []struct{ name, email, password string }{
		{"", "alice@example.com", "hunter22"},
		{"Alice", "", "hunter22"},
		{"Alice", "alice@example.com", ""},
	} {
		_, err := svc.Signup(tc.name, tc.email, tc.password)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	_, err := svc.Signup("Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	token, err := svc.Login("alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	_, err := svc.Signup("Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	// Federated-only account: no password hash.
	require.NoError(t, db.Create(&models.User{
		UserID:       "google-user",
		Name:         "Bob",
		Email:        "bob@example.com",
		AuthProvider: "google",
		Role:         "user",
	}).Error)

	cases := map[string]struct{ email, password string }{
		"unknown email":  {"nobody@example.com", "hunter22"},
		"wrong password": {"alice@example.com", "wrong"},
		"federated only": {"bob@example.com", "hunter22"},
	}
	var messages []string
	for name, tc := range cases {
		_, err := svc.Login(tc.email, tc.password)
		require.Error(t, err, name)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err), name)

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		messages = append(messages, appErr.Message)
	}

	// The message must not leak which field was wrong.
	for _, m := range messages {
		assert.Equal(t, messages[0], m)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	token, err := svc.Signup("Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	_, err := svc.Signup("Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Authenticate("not-a-token")
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewAuthService(db, "different-secret", "client-id")
		token, err := other.Signup("Mallory", "mallory@example.com", "pw123456")
		require.NoError(t, err)

		_, err = svc.Authenticate(token)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})

	t.Run("expired", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			UserID: "whoever",
		})
		signed, err := expired.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Authenticate(signed)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})

	t.Run("user deleted", func(t *testing.T) {
		token, err := svc.Signup("Temp", "temp@example.com", "pw123456")
		require.NoError(t, err)
		require.NoError(t, db.Delete(&models.User{}, "email = ?", "temp@example.com").Error)

		_, err = svc.Authenticate(token)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})
}

func TestLoginWithGoogle(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")
	svc.verifyGoogle = func(_ context.Context, token, audience string) (*googleTokenPayload, error) {
		assert.Equal(t, "client-id", audience)
		return &googleTokenPayload{
			Email:         "carol@example.com",
			EmailVerified: true,
			Name:          "Carol",
			Picture:       "https://example.com/carol.png",
		}, nil
	}

	token, err := svc.LoginWithGoogle(context.Background(), "fake-id-token")
	require.NoError(t, err)

	user, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "google", user.AuthProvider)
	assert.Equal(t, "Carol", user.Name)
	assert.Equal(t, "https://example.com/carol.png", user.ProfilePic)
	assert.Empty(t, user.PasswordHash)

	// Second login must reuse the existing account.
	_, err = svc.LoginWithGoogle(context.Background(), "fake-id-token")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "carol@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginWithGoogleRejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", "client-id")

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.LoginWithGoogle(context.Background(), "")
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("unverifiable token", func(t *testing.T) {
		svc.verifyGoogle = func(context.Context, string, string) (*googleTokenPayload, error) {
			return nil, errors.New("signature mismatch")
		}
		_, err := svc.LoginWithGoogle(context.Background(), "bad")
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})

	t.Run("unverified email", func(t *testing.T) {
		svc.verifyGoogle = func(context.Context, string, string) (*googleTokenPayload, error) {
			return &googleTokenPayload{Email: "x@example.com", EmailVerified: false}, nil
		}
		_, err := svc.LoginWithGoogle(context.Background(), "ok")
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})
}
