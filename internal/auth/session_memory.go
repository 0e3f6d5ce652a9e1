// AngelaMos | 2026
// session_memory.go

package auth

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

// MemorySessionStore keeps sessions in process. bigcache evicts on a global
// life window, so every value also carries its own expiry.
type MemorySessionStore struct {
	cache *bigcache.BigCache
	now   func() time.Time
}

func NewMemorySessionStore(
	ctx context.Context,
	lifeWindow time.Duration,
) (*MemorySessionStore, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}

	return &MemorySessionStore{cache: cache, now: time.Now}, nil
}

func (s *MemorySessionStore) Save(
	_ context.Context,
	key string,
	userID uuid.UUID,
	ttl time.Duration,
) error {
	buf := make([]byte, 24)
	copy(buf, userID[:])
	//nolint:gosec // G115: unix nanos are positive for any realistic clock
	binary.BigEndian.PutUint64(buf[16:], uint64(s.now().Add(ttl).UnixNano()))

	if err := s.cache.Set(key, buf); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *MemorySessionStore) Get(
	_ context.Context,
	key string,
) (uuid.UUID, error) {
	buf, err := s.cache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return uuid.Nil, fmt.Errorf("get session: %w", core.ErrNotFound)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}
	if len(buf) != 24 {
		return uuid.Nil, fmt.Errorf("get session: corrupt value")
	}

	//nolint:gosec // G115: round trip of the value written by Save
	expires := time.Unix(0, int64(binary.BigEndian.Uint64(buf[16:])))
	if !s.now().Before(expires) {
		//nolint:errcheck // expired entry cleanup is best effort
		_ = s.cache.Delete(key)
		return uuid.Nil, fmt.Errorf("get session: %w", core.ErrNotFound)
	}

	var userID uuid.UUID
	copy(userID[:], buf[:16])
	return userID, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, key string) error {
	err := s.cache.Delete(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("delete session: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *MemorySessionStore) Ping(context.Context) error {
	return nil
}

func (s *MemorySessionStore) Close() error {
	return s.cache.Close()
}
