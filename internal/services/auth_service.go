package services

import (
	"context"
	"time"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and validates the JWTs the HTTP layer uses to
// establish a principal.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error)
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	ValidateToken(token string) (*AuthClaims, error)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthClaims carries the principal's role alongside the registered
// claims; subject is the user ID.
type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) issueToken(user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	claims := AuthClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rentdesk-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"rentdesk-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, *models.User, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.Validation("email", "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil, apperrors.Unauthenticated("invalid email or password")
		}
		return nil, nil, err
	}
	if user.Status != models.StatusActive {
		return nil, nil, apperrors.Unauthenticated("account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.Unauthenticated("invalid email or password")
	}

	tokens, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// Register creates a self-service account with the tenant role. Admin
// accounts are only created by other admins through UserService.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, apperrors.Validation("name", "name is required")
	}
	if req.Email == "" {
		return nil, apperrors.Validation("email", "email is required")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("password", "password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleTenant,
		Status:       models.StatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("user", "email already registered")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Unauthenticated("invalid token")
	}
	claims, ok := token.Claims.(*AuthClaims)
	if !ok {
		return nil, apperrors.Unauthenticated("invalid claims")
	}
	return claims, nil
}
