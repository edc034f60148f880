package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// AuthService owns registration and the CIN+RIB login. CIN+RIB is a weak
// shared secret, so failed attempts per CIN are capped over a rolling window.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
	MaxAttempts int
	AttemptTTL  time.Duration
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, maxAttempts int, attemptTTL time.Duration) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if attemptTTL <= 0 {
		attemptTTL = 15 * time.Minute
	}
	return &AuthService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger, MaxAttempts: maxAttempts, AttemptTTL: attemptTTL}
}

// Session is an issued credential plus the public view of its user.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func attemptsKey(cin string) string { return "login:attempts:" + cin }

// Register creates a user and issues a session credential. Duplicate email or
// CIN come back as repository.ErrDuplicateEmail / ErrDuplicateCIN.
func (s *AuthService) Register(ctx context.Context, email, password, cin, rib string) (*Session, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: hash,
		CIN:          cin,
		RIB:          rib,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login authenticates the CIN+RIB pair. The caller cannot distinguish a wrong
// RIB from a throttled CIN beyond the dedicated sentinel errors.
func (s *AuthService) Login(ctx context.Context, cin, rib string) (*Session, error) {
	if s.throttled(ctx, cin) {
		return nil, ErrTooManyAttempts
	}

	u, err := s.Repo.GetByCIN(ctx, cin)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.recordFailure(ctx, cin)
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.RIB != rib {
		s.recordFailure(ctx, cin)
		return nil, ErrInvalidCredentials
	}

	s.clearFailures(ctx, cin)
	return s.issue(u)
}

// GetProfile returns the user for an authenticated id.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID, u.Admin)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) throttled(ctx context.Context, cin string) bool {
	if s.Redis == nil {
		return false
	}
	n, err := s.Redis.Get(ctx, attemptsKey(cin)).Int()
	if err != nil {
		return false // fail-open when redis is down
	}
	return n >= s.MaxAttempts
}

func (s *AuthService) recordFailure(ctx context.Context, cin string) {
	if s.Redis == nil {
		return
	}
	key := attemptsKey(cin)
	pipe := s.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.AttemptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
		return
	}
	if s.Logger != nil && incr.Val() >= int64(s.MaxAttempts) {
		s.Logger.WithField("cin", cin).Warn("login attempts capped")
	}
}

func (s *AuthService) clearFailures(ctx context.Context, cin string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, attemptsKey(cin)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("redis del failed")
	}
}
