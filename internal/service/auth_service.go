package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mealbox/internal/domain"
)

const accessTokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid email or password")

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone,omitempty"`
	Role     string    `json:"role"`
	Approved bool      `json:"approved"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() domain.Actor {
	return domain.Actor{
		UserID:   c.UserID,
		Name:     c.Name,
		Phone:    c.Phone,
		Role:     domain.Role(c.Role),
		Approved: c.Approved,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ShopName string `json:"shop_name,omitempty"`
	Location string `json:"location,omitempty"`
}

type AuthService struct {
	users  UserRepository
	secret []byte
	now    func() time.Time
}

func NewAuthService(users UserRepository, secret []byte) *AuthService {
	return &AuthService{users: users, secret: secret, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if role == "" {
		role = domain.RoleCustomer
	}
	if role != domain.RoleCustomer && role != domain.RoleMerchant {
		return nil, fmt.Errorf("%w: role %q cannot self-register", domain.ErrInvalidInput, input.Role)
	}
	if input.Name == "" || input.Email == "" || len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: name, email and a password of 6+ characters are required", domain.ErrInvalidInput)
	}
	if role == domain.RoleMerchant && (input.ShopName == "" || input.Location == "") {
		return nil, fmt.Errorf("%w: merchants must provide a shop name and location", domain.ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Phone:    input.Phone,
		Password: string(hashed),
		Role:     role,
		// Customers are usable immediately; merchants wait for admin approval.
		Approved: role == domain.RoleCustomer,
		ShopName: input.ShopName,
		Location: input.Location,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:   user.ID,
		Name:     user.Name,
		Phone:    user.Phone,
		Role:     string(user.Role),
		Approved: user.Approved,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
