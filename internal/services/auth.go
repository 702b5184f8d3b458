package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	errInvalidCredentials = apierr.Unauthorized("invalid_credentials", "Invalid credentials.")
	errInvalidToken       = errors.New("invalid or expired token")
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthConfig struct {
	JWTSecret        string
	TokenTTL         time.Duration
	AllowAdminSignup bool
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	Signup(ctx context.Context, in SignupInput) (*types.User, string, error)
	AdminLogin(ctx context.Context, name, password string) (*types.User, string, error)
	// Authenticate resolves a token to the current user row. It returns
	// (nil, nil) when the subject no longer exists.
	Authenticate(ctx context.Context, token string) (*types.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	hasher   PasswordHasher
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, hasher PasswordHasher, cfg AuthConfig) (AuthService, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT secret required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		hasher:   hasher,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (as *authService) TokenTTL() time.Duration { return as.cfg.TokenTTL }

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", apierr.Validation("missing_fields", "Email and password are required.")
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, "", repoError("db_error", "Database error.", err)
	}
	if len(users) == 0 || !as.hasher.Compare(users[0].Password, password) {
		return nil, "", errInvalidCredentials
	}

	token, err := as.generateAccessToken(users[0])
	if err != nil {
		return nil, "", apierr.Dependency("token_error", "Failed to issue token.", err)
	}
	return users[0], token, nil
}

func (as *authService) Signup(ctx context.Context, in SignupInput) (*types.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, "", apierr.Validation("missing_fields", "All fields are required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", apierr.Validation("invalid_email", "Invalid email address.")
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = types.RoleUser
	}
	if !types.ValidRole(role) {
		return nil, "", apierr.Validation("invalid_role", "Invalid role.")
	}
	if role == types.RoleAdmin && !as.cfg.AllowAdminSignup {
		return nil, "", apierr.Forbidden("admin_signup_disabled", "Admin signup is disabled.")
	}

	hash, err := as.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", apierr.Dependency("hash_error", "Error creating user.", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		AvatarURL: types.DefaultAvatarURL,
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("user_exists", "User already exists")
		}
		_, err = as.userRepo.Create(ctx, tx, []*types.User{user})
		return err
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apierr.Conflict("user_exists", "User already exists")
		}
		return nil, "", repoError("db_error", "Error creating user.", err)
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", apierr.Dependency("token_error", "Failed to issue token.", err)
	}
	as.log.Info("User signed up", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

func (as *authService) AdminLogin(ctx context.Context, name, password string) (*types.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, "", apierr.Validation("missing_fields", "Name and password are required.")
	}

	user, err := as.userRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, "", repoError("db_error", "Server error.", err)
	}
	if user == nil || !as.hasher.Compare(user.Password, password) {
		return nil, "", errInvalidCredentials
	}
	if !user.IsAdmin() {
		return nil, "", apierr.Forbidden("not_admin", "Access denied: not an admin.")
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", apierr.Dependency("token_error", "Failed to issue token.", err)
	}
	return user, token, nil
}

func (as *authService) Authenticate(ctx context.Context, token string) (*types.User, error) {
	userID, err := as.parseToken(token)
	if err != nil {
		return nil, err
	}
	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.JWTSecret))
}

func (as *authService) parseToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, errInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, errInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", errInvalidToken)
	}
	return userID, nil
}
