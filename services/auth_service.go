package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"skillquiz/apperrors"
	"skillquiz/models"
)

const tokenValidity = 7 * 24 * time.Hour

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// googleTokenPayload is the subset of the verified ID token the service uses.
type googleTokenPayload struct {
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type googleVerifier func(ctx context.Context, token, audience string) (*googleTokenPayload, error)

type AuthService struct {
	db             *gorm.DB
	jwtSecret      []byte
	googleClientID string
	verifyGoogle   googleVerifier
}

func NewAuthService(db *gorm.DB, jwtSecret, googleClientID string) *AuthService {
	return &AuthService{
		db:             db,
		jwtSecret:      []byte(jwtSecret),
		googleClientID: googleClientID,
		verifyGoogle:   verifyGoogleIDToken,
	}
}

func verifyGoogleIDToken(ctx context.Context, token, audience string) (*googleTokenPayload, error) {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return nil, err
	}

	out := &googleTokenPayload{}
	if v, ok := payload.Claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		out.EmailVerified = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		out.Name = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		out.Picture = v
	}
	return out, nil
}

func (s *AuthService) Signup(name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", apperrors.Validation("missing fields")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", apperrors.Conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.Internal("signup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("signup failed", err)
	}

	user := models.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		AuthProvider: "email",
		Role:         "user",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", apperrors.Internal("signup failed", err)
	}

	return s.generateToken(user.UserID)
}

func (s *AuthService) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.Validation("missing fields")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.Auth("invalid credentials")
		}
		return "", apperrors.Internal("login failed", err)
	}

	// A federated-only account has no password hash; same failure as a wrong
	// password so nothing is leaked about the account.
	if user.PasswordHash == "" {
		return "", apperrors.Auth("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Auth("invalid credentials")
	}

	return s.generateToken(user.UserID)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", apperrors.Validation("missing token")
	}

	payload, err := s.verifyGoogle(ctx, idToken, s.googleClientID)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindAuth, "invalid Google token", err)
	}
	if !payload.EmailVerified {
		return "", apperrors.Auth("email not verified by Google")
	}

	var user models.User
	err = s.db.Where("email = ?", payload.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			UserID:       uuid.NewString(),
			Name:         payload.Name,
			Email:        payload.Email,
			AuthProvider: "google",
			ProfilePic:   payload.Picture,
			Role:         "user",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return "", apperrors.Internal("google login failed", err)
		}
	} else if err != nil {
		return "", apperrors.Internal("google login failed", err)
	}

	return s.generateToken(user.UserID)
}

// Authenticate resolves a session token to its user record. Every failure
// mode collapses to an auth error; the middleware turns that into a 401.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Auth("invalid or expired token")
	}

	var user models.User
	if err := s.db.Where("user_id = ?", claims.UserID).First(&user).Error; err != nil {
		return nil, apperrors.Auth("user not found")
	}

	return &user, nil
}

func (s *AuthService) generateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return signed, nil
}
