package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/todoapp/todoapp/config"
	"github.com/todoapp/todoapp/database"
	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/util/crypto"
	"github.com/todoapp/todoapp/util/random"
)

const tokenIssuer = "todoapp"

var (
	fallbackSecretOnce sync.Once
	fallbackSecret     []byte
)

// processSecret returns a per-process signing key for deployments that did
// not configure TODO_JWT_SECRET. Tokens do not survive a restart.
func processSecret() []byte {
	fallbackSecretOnce.Do(func() {
		logger.Warning("TODO_JWT_SECRET is not set, using a random per-process secret")
		fallbackSecret = []byte(random.Seq(64))
	})
	return fallbackSecret
}

type accessClaims struct {
	UserId int        `json:"id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and resolves bearer tokens.
type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(db *gorm.DB) *AuthService {
	secret := []byte(config.GetJWTSecret())
	if len(secret) == 0 {
		secret = processSecret()
	}
	return &AuthService{
		db:     db,
		secret: secret,
		ttl:    config.GetTokenTTL(),
		now:    time.Now,
	}
}

// Authenticate checks a username and password and returns a signed token.
func (s *AuthService) Authenticate(username, password string) (string, *model.User, error) {
	user := &model.User{}
	err := s.db.Where("username = ?", username).First(user).Error
	if err != nil && !database.IsNotFound(err) {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if err := crypto.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrBadCredentials
	}
	if !user.IsActive {
		return "", nil, ErrBadCredentials
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs an access token for user.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := s.now()
	claims := &accessClaims{
		UserId: user.Id,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resolve verifies a token and returns the identity it carries.
func (s *AuthService) Resolve(token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Debug("rejected expired token")
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.UserId <= 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &model.Identity{Id: claims.UserId, Username: claims.Subject, Role: claims.Role}, nil
}
