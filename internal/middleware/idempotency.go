package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-hris-console/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyLockTTL = 30 * time.Second
	IdempotencyTTL     = 24 * time.Hour

	idempotencyReplayKey = "idempotency_replay"
)

// Idempotency recognizes a POST that carries an Idempotency-Key already seen
// for this user, and rejects a duplicate while the first one is still
// running. On a repeat the stored outcome is handed to the handler through
// IdempotentReplay instead of being written verbatim, so the handler can
// rebuild fresh derived data (lists) around it. Handlers behind this
// middleware must check IdempotentReplay before mutating anything.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id_validated")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		// 1. Cek cache hasil sebelumnya
		val, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			c.Header("Idempotent-Replayed", "true")
			c.Set(idempotencyReplayKey, json.RawMessage(val))
			c.Next()
			return
		}
		if !errors.Is(err, redis.Nil) {
			// Redis bermasalah: jalan terus tanpa proteksi daripada memblokir operator
			contextutil.GetLogger(ctx, zap.L()).Warn("idempotency cache unavailable", zap.Error(err))
			c.Next()
			return
		}

		// 2. Atomic lock (SetNX). Expiry pendek supaya lock hilang sendiri kalau server crash.
		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			contextutil.GetLogger(ctx, zap.L()).Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			abortWithError(c, ErrRequestInProgress)
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

// IdempotentReplay returns the outcome stored by the first request when the
// current one is a repeat.
func IdempotentReplay(c *gin.Context) (json.RawMessage, bool) {
	v, ok := c.Get(idempotencyReplayKey)
	if !ok {
		return nil, false
	}
	raw, ok := v.(json.RawMessage)
	return raw, ok
}

// ReleaseIdempotencyLock dipanggil handler (defer) setelah selesai.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		_ = rdb.Del(c.Request.Context(), lk).Err()
	}
}

// StoreIdempotentResponse menyimpan payload sukses untuk replay.
func StoreIdempotentResponse(c *gin.Context, rdb *redis.Client, data any) {
	if rdb == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	_ = rdb.Set(c.Request.Context(), ck, payload, IdempotencyTTL).Err()
}
