package service

import (
	"context"
	"encoding/json"
	"errors"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/internal/repository"
	"quizmaster_backend/internal/util"
	"quizmaster_backend/pkg/logger"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

var errSessionCacheMiss = errors.New("session cache miss")

// SessionCache 会话缓存，Redis 未启用时为 nil
type SessionCache interface {
	Get(ctx context.Context, token string) (*model.UserSession, error)
	Set(ctx context.Context, session *model.UserSession, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

type RedisSessionCache struct {
	Redis *redis.Client
}

func NewRedisSessionCache(rdb *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{Redis: rdb}
}

func (c *RedisSessionCache) Get(ctx context.Context, token string) (*model.UserSession, error) {
	val, err := c.Redis.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, errSessionCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var session model.UserSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *RedisSessionCache) Set(ctx context.Context, session *model.UserSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, sessionKeyPrefix+session.SessionToken, data, ttl).Err()
}

func (c *RedisSessionCache) Delete(ctx context.Context, token string) error {
	return c.Redis.Del(ctx, sessionKeyPrefix+token).Err()
}

type SessionService struct {
	SessionRepo *repository.SessionRepository
	Cache       SessionCache
	TTL         time.Duration
	Now         func() time.Time
}

func NewSessionService(sessionRepo *repository.SessionRepository, cache SessionCache, ttl time.Duration) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		Cache:       cache,
		TTL:         ttl,
		Now:         time.Now,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	UserRole string `json:"userRole"`
}

func (s *SessionService) CreateSession(ctx context.Context, req LoginRequest) (*model.UserSession, error) {
	username := strings.TrimSpace(req.Username)
	role := strings.TrimSpace(req.UserRole)
	var errs []string
	if username == "" {
		errs = append(errs, "Username is required")
	}
	switch role {
	case util.RoleStudent, util.RoleTeacher, util.RoleAdmin:
	case "":
		errs = append(errs, "User role is required")
	default:
		errs = append(errs, "User role must be student, teacher or admin")
	}
	if len(errs) > 0 {
		return nil, util.NewValidation(errs...)
	}

	now := s.Now()
	session := &model.UserSession{
		Username:     username,
		UserRole:     role,
		SessionToken: uuid.NewString(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.TTL),
		Active:       true,
	}
	if err := s.SessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, session, s.TTL); err != nil {
			logger.Log.Warn("Failed to cache session", zap.String("username", username), zap.Error(err))
		}
	}
	return session, nil
}

// GetSession 优先读缓存，过期会话视为不存在
func (s *SessionService) GetSession(ctx context.Context, token string) (*model.UserSession, error) {
	now := s.Now()

	if s.Cache != nil {
		session, err := s.Cache.Get(ctx, token)
		if err == nil {
			if session.Active && now.Before(session.ExpiresAt) {
				return session, nil
			}
		} else if !errors.Is(err, errSessionCacheMiss) {
			logger.Log.Warn("Session cache read failed", zap.Error(err))
		}
	}

	session, err := s.SessionRepo.FindActiveByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, "Session")
	}
	if !now.Before(session.ExpiresAt) {
		return nil, util.NewNotFound("Session")
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, session, session.ExpiresAt.Sub(now)); err != nil {
			logger.Log.Warn("Failed to cache session", zap.Error(err))
		}
	}
	return session, nil
}

// Logout 幂等，重复调用不报错
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if _, err := s.SessionRepo.Deactivate(ctx, token); err != nil {
		return err
	}
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, token); err != nil {
			logger.Log.Warn("Failed to evict session", zap.Error(err))
		}
	}
	return nil
}
