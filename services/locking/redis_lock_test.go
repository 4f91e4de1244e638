package locking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	l := NewRedisLocker(db, 10*time.Second, zap.NewNop())
	l.retryEvery = time.Millisecond
	l.newToken = func() string { return "token-1" }
	return l, mock
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	l, mock := newTestRedisLocker(t)

	mock.ExpectSetNX("lock:professional:p-1", "token-1", 10*time.Second).SetVal(true)
	mock.ExpectEval(releaseScript, []string{"lock:professional:p-1"}, "token-1").SetVal(int64(1))

	unlock, err := l.Lock(context.Background(), ProfessionalKey("p-1"))
	require.NoError(t, err)
	unlock()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_RetriesWhileHeld(t *testing.T) {
	l, mock := newTestRedisLocker(t)

	mock.ExpectSetNX("lock:professional:p-1", "token-1", 10*time.Second).SetVal(false)
	mock.ExpectSetNX("lock:professional:p-1", "token-1", 10*time.Second).SetVal(false)
	mock.ExpectSetNX("lock:professional:p-1", "token-1", 10*time.Second).SetVal(true)
	mock.ExpectEval(releaseScript, []string{"lock:professional:p-1"}, "token-1").SetVal(int64(1))

	unlock, err := l.Lock(context.Background(), ProfessionalKey("p-1"))
	require.NoError(t, err)
	unlock()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_GivesUpWhenContextDone(t *testing.T) {
	l, mock := newTestRedisLocker(t)
	l.retryEvery = 50 * time.Millisecond

	mock.ExpectSetNX("lock:professional:p-1", "token-1", 10*time.Second).SetVal(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := l.Lock(ctx, ProfessionalKey("p-1"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_AcquireError(t *testing.T) {
	l, mock := newTestRedisLocker(t)

	mock.ExpectSetNX("lock:professional:p-1", "token-1", 10*time.Second).SetErr(errors.New("connection refused"))

	_, err := l.Lock(context.Background(), ProfessionalKey("p-1"))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_Lease(t *testing.T) {
	l, _ := newTestRedisLocker(t)

	var locker Locker = l
	leased, ok := locker.(Leased)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, leased.Lease())

	_, ok = Locker(NewKeyedMutex()).(Leased)
	assert.False(t, ok, "in-process locks never lapse")
}
