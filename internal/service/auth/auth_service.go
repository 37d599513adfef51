package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	ParseToken(token string) (domain.Principal, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

type Claims struct {
	IsStaff bool `json:"is_staff"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users       repository.UserRepository
	secret      []byte
	tokenTTL    time.Duration
	bcryptCost  int
	staffEmails map[string]bool
	now         func() time.Time
	log         *zap.Logger
}

type AuthServiceOption func(*AuthService)

func WithStaffEmails(emails []string) AuthServiceOption {
	return func(s *AuthService) {
		for _, e := range emails {
			s.staffEmails[strings.ToLower(strings.TrimSpace(e))] = true
		}
	}
}

func WithBcryptCost(cost int) AuthServiceOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

func WithLogger(log *zap.Logger) AuthServiceOption {
	return func(s *AuthService) {
		s.log = log
	}
}

func withClock(now func() time.Time) AuthServiceOption {
	return func(s *AuthService) {
		s.now = now
	}
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration, opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		users:       users,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		bcryptCost:  bcrypt.DefaultCost,
		staffEmails: make(map[string]bool),
		now:         time.Now,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        creds.Email,
		PasswordHash: string(hash),
		IsStaff:      s.staffEmails[creds.Email],
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID), zap.Bool("is_staff", user.IsStaff))
	return user, nil
}

// Login returns a signed access token. Unknown emails and wrong passwords
// both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) ParseToken(raw string) (domain.Principal, error) {
	var claims Claims
	keyFunc := func(*jwt.Token) (any, error) { return s.secret, nil }
	_, err := jwt.ParseWithClaims(raw, &claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return domain.Principal{UserID: id, IsStaff: claims.IsStaff}, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

var _ AuthUseCase = (*AuthService)(nil)
