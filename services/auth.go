package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/database"
)

var (
	// ErrEmailTaken is returned by Register when the email is in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Login for an unknown email or
	// a wrong password alike, so callers cannot tell which it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers bad signatures, bad claims, and expiry.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	UserID      string
	DisplayName string
	Email       string
}

// AuthService handles registration, login, and stateless token issuance.
type AuthService struct {
	store     *database.Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(store *database.Store, jwtSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a user with a bcrypt-hashed credential. The plaintext
// password is never stored.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*database.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, email, displayName, string(hash))
	if errors.Is(err, database.ErrConflict) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credential and returns the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*database.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateToken mints a signed JWT carrying the user's identity claims.
func (s *AuthService) CreateToken(user *database.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.DisplayName,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks the signature and expiry and returns the claims.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["sub"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}
	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)

	return &Claims{UserID: userID, DisplayName: name, Email: email}, nil
}
