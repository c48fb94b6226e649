package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	payrollerrors "go-hris-console/internal/payroll/errors"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultEditingSessionTTL = 30 * time.Minute
	editingSessionKeyPrefix  = "console:payroll:editing_session:"
)

// EditForm is the operator-editable part of an entry.
type EditForm struct {
	GrossSalary   float64 `json:"gross_salary"`
	NetSalary     float64 `json:"net_salary"`
	PaymentDate   string  `json:"payment_date"`
	PaymentStatus string  `json:"payment_status"`
}

type EditingSession struct {
	ID        string    `json:"id"`
	EntityID  int64     `json:"entity_id"`
	FormState EditForm  `json:"form_state"`
	OpenedBy  string    `json:"opened_by,omitempty"`
	OpenedAt  time.Time `json:"opened_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionStore interface {
	Save(ctx context.Context, session EditingSession) error
	Get(ctx context.Context, id string) (*EditingSession, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = DefaultEditingSessionTTL
	}
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func editingSessionKey(id string) string {
	return editingSessionKeyPrefix + id
}

func (s *redisSessionStore) Save(ctx context.Context, session EditingSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, editingSessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save editing session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*EditingSession, error) {
	payload, err := s.rdb.Get(ctx, editingSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, payrollerrors.ErrEditingSessionNotFound
		}
		return nil, fmt.Errorf("load editing session: %w", err)
	}

	var session EditingSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode editing session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, editingSessionKey(id)).Err()
}
