package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-import/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const draftKey = "quizimport:import:draft:01HZXDRAFT"

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(draftKey).SetVal(`[{"id":"q1"}]`)
		val, err := adapter.Get(ctx, draftKey)
		assert.NoError(t, err)
		assert.Equal(t, `[{"id":"q1"}]`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(draftKey).RedisNil()
		val, err := adapter.Get(ctx, draftKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(draftKey).SetErr(redisErr)
		val, err := adapter.Get(ctx, draftKey)
		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	ttl := 30 * time.Minute

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(draftKey, "payload", ttl).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, draftKey, "payload", ttl))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("OOM command not allowed")
		mock.ExpectSet(draftKey, "payload", ttl).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Set(ctx, draftKey, "payload", ttl), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(draftKey).SetVal(1)
		assert.NoError(t, adapter.Delete(ctx, draftKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingKey", func(t *testing.T) {
		mock.ExpectDel(draftKey).SetVal(0)
		assert.NoError(t, adapter.Delete(ctx, draftKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("readonly replica")
		mock.ExpectDel(draftKey).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Delete(ctx, draftKey), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(context.Background()))

	mock.ExpectPing().SetErr(redis.ErrClosed)
	assert.ErrorIs(t, adapter.Ping(context.Background()), redis.ErrClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
