package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity/model"
)

func TestMemoryNotifier_PostAndExpire(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNotifier(NoticeTTLs{Acknowledgment: 30 * time.Millisecond, Celebration: 30 * time.Millisecond}, nil)

	current, err := n.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, n.Post(ctx, model.NoticeAcknowledgment, `Added "Buy milk"`))
	current, err = n.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, model.NoticeAcknowledgment, current.Kind)
	assert.Equal(t, `Added "Buy milk"`, current.Message)

	assert.Eventually(t, func() bool {
		c, _ := n.Current(ctx)
		return c == nil
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryNotifier_StaleClearKeepsNewerNotice(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNotifier(NoticeTTLs{Acknowledgment: 20 * time.Millisecond, Celebration: time.Hour}, nil)

	require.NoError(t, n.Post(ctx, model.NoticeAcknowledgment, "first"))
	require.NoError(t, n.Post(ctx, model.NoticeCelebration, "second"))

	// Outlive the first notice's timer.
	time.Sleep(60 * time.Millisecond)

	current, err := n.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "second", current.Message)
	assert.Equal(t, model.NoticeCelebration, current.Kind)
}

func TestMemoryNotifier_ClearIsIdempotent(t *testing.T) {
	n := NewMemoryNotifier(NoticeTTLs{Acknowledgment: time.Hour, Celebration: time.Hour}, nil)
	require.NoError(t, n.Post(context.Background(), model.NoticeAcknowledgment, "hello"))

	n.clear(1)
	n.clear(1)
	n.clear(0)

	current, err := n.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestMemoryNotifier_UsesClockAndTTL(t *testing.T) {
	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	ttls := NoticeTTLs{Acknowledgment: 2 * time.Second, Celebration: 4 * time.Second}
	n := NewMemoryNotifier(ttls, func() time.Time { return now })

	require.NoError(t, n.Post(context.Background(), model.NoticeCelebration, "done"))
	current, err := n.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, now, current.PostedAt)
	assert.Equal(t, now.Add(4*time.Second), current.ExpiresAt)
}

func TestRedisNotifier(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	n, err := NewRedisNotifier(url, NoticeTTLs{Acknowledgment: 200 * time.Millisecond, Celebration: time.Second}, nil)
	require.NoError(t, err)
	defer n.Close()
	defer n.Client.Del(ctx, noticeKey)

	require.NoError(t, n.Post(ctx, model.NoticeAcknowledgment, "saved"))
	current, err := n.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "saved", current.Message)

	assert.Eventually(t, func() bool {
		c, err := n.Current(ctx)
		return err == nil && c == nil
	}, 2*time.Second, 20*time.Millisecond)
}
