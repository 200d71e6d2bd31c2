package tokencache

import (
	"careplan-service/internal/app/models"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *mutableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mutableClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type memoryMirror struct {
	tokens map[string]models.AuthToken
}

func (m *memoryMirror) Load(ctx context.Context, provider string) (*models.AuthToken, error) {
	token, ok := m.tokens[provider]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (m *memoryMirror) Store(ctx context.Context, provider string, token models.AuthToken) error {
	m.tokens[provider] = token
	return nil
}

func (m *memoryMirror) Delete(ctx context.Context, provider string) error {
	delete(m.tokens, provider)
	return nil
}

func TestCache_EnsureValidSharesConcurrentRefresh(t *testing.T) {
	clock := &mutableClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	cache := New(clock)

	var calls int32
	release := make(chan struct{})
	refresh := func(ctx context.Context) (string, int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "token-1", 3600, nil
	}

	const workers = 10
	var wg sync.WaitGroup
	results := make([]models.AuthToken, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.EnsureValid(context.Background(), "AHA", refresh)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "token-1", results[i].Value)
	}
}

func TestCache_Expiry(t *testing.T) {
	clock := &mutableClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	cache := New(clock)

	assert.True(t, cache.IsExpired("AHA"))

	cache.Set("AHA", "token-1", 60)
	assert.False(t, cache.IsExpired("AHA"))

	clock.Advance(59 * time.Second)
	assert.False(t, cache.IsExpired("AHA"))

	clock.Advance(time.Second)
	assert.True(t, cache.IsExpired("AHA"))
}

func TestCache_EnsureValidRefreshesAfterExpiry(t *testing.T) {
	clock := &mutableClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	cache := New(clock)

	var calls int
	refresh := func(ctx context.Context) (string, int, error) {
		calls++
		return "token", 60, nil
	}

	_, err := cache.EnsureValid(context.Background(), "AHA", refresh)
	require.NoError(t, err)
	_, err = cache.EnsureValid(context.Background(), "AHA", refresh)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Minute)
	_, err = cache.EnsureValid(context.Background(), "AHA", refresh)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCache_RefreshFailureLeavesCacheEmpty(t *testing.T) {
	cache := New(&mutableClock{now: time.Now()})
	loginErr := errors.New("bad credentials")

	_, err := cache.EnsureValid(context.Background(), "REAN", func(ctx context.Context) (string, int, error) {
		return "", 0, loginErr
	})

	assert.ErrorIs(t, err, loginErr)
	_, ok := cache.Get("REAN")
	assert.False(t, ok)
}

func TestCache_InvalidateForcesLogin(t *testing.T) {
	cache := New(&mutableClock{now: time.Now()})
	cache.Set("AHA", "stale", 3600)
	cache.Invalidate(context.Background(), "AHA")

	token, err := cache.EnsureValid(context.Background(), "AHA", func(ctx context.Context) (string, int, error) {
		return "fresh", 3600, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh", token.Value)
}

func TestCache_Mirror(t *testing.T) {
	clock := &mutableClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	mirror := &memoryMirror{tokens: map[string]models.AuthToken{
		"AHA": {Value: "shared", ExpiresAt: clock.now.Add(time.Hour)},
	}}
	cache := New(clock, WithMirror(mirror))

	token, err := cache.EnsureValid(context.Background(), "AHA", func(ctx context.Context) (string, int, error) {
		t.Fatal("login must not run while the mirrored token is valid")
		return "", 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "shared", token.Value)

	_, err = cache.Refresh(context.Background(), "REAN", func(ctx context.Context) (string, int, error) {
		return "rean-key", 600, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "rean-key", mirror.tokens["REAN"].Value)
}

func TestCache_InvalidateDropsMirroredToken(t *testing.T) {
	clock := &mutableClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	mirror := &memoryMirror{tokens: map[string]models.AuthToken{
		"AHA": {Value: "rejected", ExpiresAt: clock.now.Add(time.Hour)},
	}}
	cache := New(clock, WithMirror(mirror))

	var calls int
	refresh := func(ctx context.Context) (string, int, error) {
		calls++
		return "fresh", 3600, nil
	}

	token, err := cache.EnsureValid(context.Background(), "AHA", refresh)
	require.NoError(t, err)
	assert.Equal(t, "rejected", token.Value)
	assert.Equal(t, 0, calls)

	cache.Invalidate(context.Background(), "AHA")
	_, mirrored := mirror.tokens["AHA"]
	assert.False(t, mirrored)

	token, err = cache.EnsureValid(context.Background(), "AHA", refresh)
	require.NoError(t, err)
	assert.Equal(t, "fresh", token.Value)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", mirror.tokens["AHA"].Value)
}

func TestCache_SharedRefreshSurvivesCancelledCaller(t *testing.T) {
	cache := New(&mutableClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)})

	var calls int32
	release := make(chan struct{})
	refresh := func(ctx context.Context) (string, int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		return "token-1", 3600, nil
	}

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := cache.EnsureValid(leaderCtx, "AHA", refresh)
		leaderErr <- err
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		token models.AuthToken
		err   error
	}
	followerResult := make(chan result, 1)
	go func() {
		token, err := cache.EnsureValid(context.Background(), "AHA", refresh)
		followerResult <- result{token, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)
	close(release)

	follower := <-followerResult
	require.NoError(t, follower.err)
	assert.Equal(t, "token-1", follower.token.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
