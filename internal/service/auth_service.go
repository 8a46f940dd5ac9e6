package service

import (
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/config"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminClaims is the backoffice token payload.
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CustomerClaims is the storefront token payload.
type CustomerClaims struct {
	CustomerID uint   `json:"customer_id"`
	StoreID    uint   `json:"store_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterCustomerInput creates a storefront account.
type RegisterCustomerInput struct {
	StoreID  uint
	Name     string
	Email    string
	Phone    string
	Password string
	State    string
}

// AuthService handles admin and customer authentication. The two audiences
// sign with separate secrets so a storefront token can never reach the
// admin surface.
type AuthService struct {
	cfg          *config.Config
	adminRepo    repository.AdminRepository
	customerRepo repository.CustomerRepository
}

// NewAuthService creates an auth service.
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, customerRepo repository.CustomerRepository) *AuthService {
	return &AuthService{
		cfg:          cfg,
		adminRepo:    adminRepo,
		customerRepo: customerRepo,
	}
}

// HashPassword hashes with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a bcrypt hash with a candidate.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// AdminLogin authenticates an operator and issues a token.
func (s *AuthService) AdminLogin(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrAuthFailed
	}
	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrAuthFailed
	}

	token, expiresAt, err := s.generateAdminToken(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, expiresAt, nil
}

// RegisterCustomer creates a storefront account with a store-scoped unique
// email.
func (s *AuthService) RegisterCustomer(input RegisterCustomerInput) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if input.StoreID == 0 || email == "" || name == "" || len(input.Password) < 6 {
		return nil, ErrInvalidInput
	}

	existing, err := s.customerRepo.GetByEmail(input.StoreID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		StoreID:      input.StoreID,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		State:        strings.TrimSpace(input.State),
		IsActive:     true,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CustomerLogin authenticates a storefront account and issues a token.
func (s *AuthService) CustomerLogin(storeID uint, email, password string) (*models.Customer, string, time.Time, error) {
	customer, err := s.customerRepo.GetByEmail(storeID, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil || !customer.IsActive {
		return nil, "", time.Time{}, ErrAuthFailed
	}
	if err := s.VerifyPassword(customer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrAuthFailed
	}

	token, expiresAt, err := s.generateCustomerToken(customer)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, expiresAt, nil
}

// ParseAdminToken validates a backoffice token.
func (s *AuthService) ParseAdminToken(tokenString string) (*AdminClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// ParseCustomerToken validates a storefront token.
func (s *AuthService) ParseCustomerToken(tokenString string) (*CustomerClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.CustomerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomerClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

func (s *AuthService) generateAdminToken(admin *models.Admin) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (s *AuthService) generateCustomerToken(customer *models.Customer) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.CustomerJWT.ExpireHours) * time.Hour)
	claims := CustomerClaims{
		CustomerID: customer.ID,
		StoreID:    customer.StoreID,
		Email:      customer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CustomerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}
