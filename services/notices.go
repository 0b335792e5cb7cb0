package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"productivity/model"

	"github.com/redis/go-redis/v9"
)

// NoticeTTLs sets how long each kind of notice stays visible.
type NoticeTTLs struct {
	Acknowledgment time.Duration
	Celebration    time.Duration
}

func DefaultNoticeTTLs() NoticeTTLs {
	return NoticeTTLs{Acknowledgment: 2 * time.Second, Celebration: 3 * time.Second}
}

func (t NoticeTTLs) For(kind model.NoticeKind) time.Duration {
	if kind == model.NoticeCelebration {
		return t.Celebration
	}
	return t.Acknowledgment
}

func newNotice(kind model.NoticeKind, message string, now time.Time, ttl time.Duration) model.Notice {
	return model.Notice{
		Kind:      kind,
		Message:   message,
		PostedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// MemoryNotifier keeps the latest notice in process and clears it with a
// timer. Every post bumps a generation, so a timer belonging to an older
// notice finds a newer generation and leaves the current notice alone.
type MemoryNotifier struct {
	mu         sync.Mutex
	ttls       NoticeTTLs
	clock      func() time.Time
	current    *model.Notice
	generation uint64
}

func NewMemoryNotifier(ttls NoticeTTLs, clock func() time.Time) *MemoryNotifier {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryNotifier{ttls: ttls, clock: clock}
}

func (n *MemoryNotifier) Post(ctx context.Context, kind model.NoticeKind, message string) error {
	ttl := n.ttls.For(kind)
	notice := newNotice(kind, message, n.clock(), ttl)

	n.mu.Lock()
	n.generation++
	gen := n.generation
	n.current = &notice
	n.mu.Unlock()

	time.AfterFunc(ttl, func() { n.clear(gen) })
	return nil
}

func (n *MemoryNotifier) Current(ctx context.Context) (*model.Notice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil, nil
	}
	notice := *n.current
	return &notice, nil
}

// clear drops the notice posted as generation gen, if it is still showing.
func (n *MemoryNotifier) clear(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.generation == gen {
		n.current = nil
	}
}

const noticeKey = "notice:current"

// RedisNotifier stores the latest notice under a single key whose TTL does
// the clearing.
type RedisNotifier struct {
	Client *redis.Client
	ttls   NoticeTTLs
	clock  func() time.Time
}

// NewRedisNotifier connects to redisURL and checks the connection.
func NewRedisNotifier(redisURL string, ttls NoticeTTLs, clock func() time.Time) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if clock == nil {
		clock = time.Now
	}
	return &RedisNotifier{Client: client, ttls: ttls, clock: clock}, nil
}

func (n *RedisNotifier) Post(ctx context.Context, kind model.NoticeKind, message string) error {
	ttl := n.ttls.For(kind)
	data, err := json.Marshal(newNotice(kind, message, n.clock(), ttl))
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	if err := n.Client.Set(ctx, noticeKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store notice: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Current(ctx context.Context) (*model.Notice, error) {
	data, err := n.Client.Get(ctx, noticeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notice: %w", err)
	}

	var notice model.Notice
	if err := json.Unmarshal(data, &notice); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notice: %w", err)
	}
	return &notice, nil
}

func (n *RedisNotifier) Close() error {
	return n.Client.Close()
}
