// Package cache stores rendered /api/calculate responses keyed by a hash of
// the request.
package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"go.uber.org/zap"
)

// Cache is a byte-valued key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Close() error
}

// Options selects and configures a Cache.
type Options struct {
	Type         string // none, memory, redis
	RedisAddress string
	TTL          time.Duration
}

// New builds the cache named by opts.Type. An empty type means none.
func New(opts Options, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTLSeconds * time.Second
	}

	switch opts.Type {
	case "", constants.CacheTypeNone:
		return Noop{}, nil
	case constants.CacheTypeMemory:
		return NewMemory(ttl), nil
	case constants.CacheTypeRedis:
		if opts.RedisAddress == "" {
			return nil, errors.Newf("cache type %s requires a redis address", opts.Type)
		}
		return NewRedis(opts.RedisAddress, logger), nil
	}
	return nil, errors.Newf("unknown cache type %q, expected one of %s, %s, %s",
		opts.Type, constants.CacheTypeNone, constants.CacheTypeMemory, constants.CacheTypeRedis)
}

// Pinger is implemented by caches backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks that c can reach its backing store. In-process caches always
// succeed.
func Ping(ctx context.Context, c Cache) error {
	if p, ok := c.(Pinger); ok {
		return errors.Wrap(p.Ping(ctx), "pinging cache")
	}
	return nil
}

// Key derives a cache key from a namespace and the canonical request body.
func Key(namespace string, body []byte) string {
	return namespace + ":" + strconv.FormatUint(xxhash.Sum64(body), 16)
}

// Seal packs a response together with the canonical request it answers.
func Seal(request, response []byte) []byte {
	entry := make([]byte, 0, binary.MaxVarintLen64+len(request)+len(response))
	entry = binary.AppendUvarint(entry, uint64(len(request)))
	entry = append(entry, request...)
	return append(entry, response...)
}

// Open returns the response sealed in entry when entry was stored for
// request. Entries written for a different request under a colliding key,
// or not written by Seal, miss.
func Open(entry, request []byte) ([]byte, bool) {
	n, width := binary.Uvarint(entry)
	if width <= 0 || n > uint64(len(entry)-width) {
		return nil, false
	}
	stored := entry[width : width+int(n)]
	if !bytes.Equal(stored, request) {
		return nil, false
	}
	return entry[width+int(n):], true
}

// Noop never stores anything.
type Noop struct{}

// Get implements Cache.
func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

// Set implements Cache.
func (Noop) Set(context.Context, string, []byte, time.Duration) {}

// Close implements Cache.
func (Noop) Close() error { return nil }
