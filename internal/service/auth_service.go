package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"mealmatcher/internal/models"
	"mealmatcher/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so responses don't leak account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthConfig holds the token signing material, loaded from config in main.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService handles accounts, password hashing and JWT sessions.
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, cfg: cfg}
}

var _ Authorization = (*AuthService)(nil)

// Register hashes the password and creates a new user. Email shape and
// minimum password length are validated by the HTTP layer before this call;
// the duplicate-email case surfaces here as ErrEmailTaken via the DB's
// UNIQUE constraint.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (int, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

// Login verifies credentials and returns the user record plus a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Guest provisions an anonymous pseudo-account and logs it in immediately.
// The random-suffix email and throwaway password skip the HTTP layer's
// registration validation on purpose: it is the low-friction onboarding path.
func (s *AuthService) Guest(ctx context.Context) (*models.User, string, error) {
	email := fmt.Sprintf("guest%09d@mealmatcher.local", rand.IntN(1_000_000_000))
	name := "Guest"

	hash, err := hashPassword(uuid.NewString())
	if err != nil {
		return nil, "", fmt.Errorf("hash guest password: %w", err)
	}
	id, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		return nil, "", fmt.Errorf("create guest account: %w", err)
	}

	token, err := s.issueToken(email)
	if err != nil {
		return nil, "", err
	}
	return &models.User{ID: id, Email: email, Name: name}, token, nil
}

// GetUserID resolves a token identity (email) to the internal numeric id.
func (s *AuthService) GetUserID(ctx context.Context, email string) (int, error) {
	id, err := s.users.GetIDByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, ErrUnknownUser
	}
	return id, nil
}

// GetUser loads the full user record, e.g. to read dietary preferences.
func (s *AuthService) GetUser(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownUser
	}
	return u, nil
}

// UpdateProfile applies the non-empty fields of upd and returns the updated
// record plus a fresh token (the email, and with it the token identity, may
// have changed). Empty fields are left untouched, not cleared.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (*models.User, string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrUnknownUser
	}

	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.DietaryPrefs != "" {
		u.DietaryPrefs = upd.DietaryPrefs
	}
	if upd.Password != "" {
		hash, err := hashPassword(upd.Password)
		if err != nil {
			return nil, "", fmt.Errorf("invalid password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u.ID, u.Email, u.Name, u.DietaryPrefs, u.PasswordHash); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Claims binds a session to the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// ParseToken validates the JWT and returns the identity (email) it carries.
// There is no revocation list: a token stays valid until expiry even if the
// password changes afterwards.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash (bcrypt compares in constant time)
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT bound to the identity email
func (s *AuthService) issueToken(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
