// Package users содержит бизнес-логику регистрации, входа и проверки сессий пользователей.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/daily-diet/internal/lib/password"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
	"github.com/magabrotheeeer/daily-diet/internal/storage"
)

var (
	// ErrUserExists — пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrSessionNotFound — ни один пользователь не владеет переданной сессией.
	ErrSessionNotFound = errors.New("session not found")
)

// Repository описывает методы хранилища пользователей.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserBySession(ctx context.Context, sessionID string) (*models.User, error)
	UpdateSession(ctx context.Context, userID, sessionID string) error
}

// Cache описывает методы для кэширования сессий.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// Service реализует регистрацию и вход пользователей.
type Service struct {
	repo       Repository
	cache      Cache
	log        *slog.Logger
	bcryptCost int
	sessionTTL time.Duration
}

// New создает новый экземпляр Service.
// sessionTTL задаёт время жизни сессии в кеше и совпадает со временем жизни cookie.
func New(repo Repository, cache Cache, log *slog.Logger, bcryptCost int, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		cache:      cache,
		log:        log,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Register создает нового пользователя с хэшированием пароля.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) error {
	const op = "users.Register"

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrUserExists
	case !errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// email мог занять параллельный запрос между проверкой и вставкой
		if errors.Is(err, storage.ErrUserExists) {
			return ErrUserExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("user_id", user.ID))
	return nil
}

// Authenticate проверяет email и пароль.
//
// Если у клиента уже есть cookie сессии (hasSession), новая сессия не выдаётся
// и возвращается пустой токен. Иначе у пользователя сохраняется новый токен,
// который и возвращается. Предыдущая сессия пользователя при этом перестаёт действовать.
func (s *Service) Authenticate(ctx context.Context, email, rawPassword string, hasSession bool) (string, error) {
	const op = "users.Authenticate"

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if hasSession {
		return "", nil
	}

	token := uuid.NewString()
	if err := s.repo.UpdateSession(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if user.SessionID != nil && *user.SessionID != "" {
		key := sessionKey(*user.SessionID)
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("failed to invalidate old session", slog.String("key", key), sl.Err(err))
		}
	}

	s.log.Info("session issued", slog.String("user_id", user.ID))
	return token, nil
}

// ResolveSession возвращает пользователя, которому принадлежит токен сессии.
// Сначала проверяется кеш, при промахе пользователь читается из хранилища и кладётся в кеш.
func (s *Service) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	const op = "users.ResolveSession"
	if token == "" {
		return nil, ErrSessionNotFound
	}

	key := sessionKey(token)
	var cached models.User
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read session from cache", slog.String("key", key), sl.Err(err))
	}
	if found && err == nil {
		return &cached, nil
	}

	user, err := s.repo.GetUserBySession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, key, user, s.sessionTTL); err != nil {
		s.log.Warn("failed to cache session", slog.String("key", key), sl.Err(err))
	}
	return user, nil
}
