package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/repository"
)

// Claims represents JWT claims
type Claims struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is returned on successful login
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterInput contains the data needed to register a user
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// AuthService handles authentication and JWT operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtExpiry  time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtExpiry:  jwtExpiry,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Login checks credentials and issues a JWT token for the user
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	fields := make(map[string]string)
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	}
	if password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("invalid request", fields)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkPassword(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Register creates a student or admin account. Passwords are stored as bcrypt hashes.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	fullName := sanitizeText(in.FullName)

	fields := make(map[string]string)
	if email == "" {
		fields["email"] = "email is required"
	}
	if in.Password == "" {
		fields["password"] = "password is required"
	}
	if fullName == "" {
		fields["full_name"] = "full_name is required"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("registration data is incomplete", fields)
	}

	role := domain.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if role == "" {
		role = domain.RoleStudent
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:         uuid.NewString(),
		Email:      email,
		Password:   string(hash),
		FullName:   fullName,
		Role:       role,
		Attributes: map[string]string{},
		CreatedAt:  &now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.Public(), nil
}

// Authenticate resolves a bearer token into the principal of an existing user.
// The role is taken from the stored user record.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.Principal{}, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrUnauthorized
		}
		return domain.Principal{}, err
	}

	return domain.Principal{ID: user.ID, Role: user.Role}, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// checkPassword accepts bcrypt hashes and legacy cleartext seed records
func checkPassword(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
