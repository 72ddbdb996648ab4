package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"smarthost/pkg/logger"
	"smarthost/pkg/model"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
)

const (
	memcachedTimeout = 200 * time.Millisecond
	maxKeyLength     = 200
)

// Entry is what gets cached: a page of properties and, for paginated
// listings, the total count.
type Entry struct {
	Properties []*model.Property `json:"properties"`
	Total      int64             `json:"total"`
}

// RemoteStore is the shared second level, satisfied by *memcache.Client.
type RemoteStore interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

type Cache interface {
	Get(key string) (*Entry, bool)
	Set(key string, entry *Entry)
	Delete(key string)
	Stop()
}

// TwoLevelCache keeps hot entries in process and shares them through
// memcached when a remote store is configured. Remote failures only cost
// a miss.
type TwoLevelCache struct {
	local  *ccache.Cache[*Entry]
	remote RemoteStore
	ttl    time.Duration
	log    *logger.Logger
}

// New builds the cache. An empty memcachedHost disables the second level.
func New(maxSize int, ttl time.Duration, memcachedHost string, log *logger.Logger) *TwoLevelCache {
	var remote RemoteStore
	if memcachedHost != "" {
		client := memcache.New(strings.Split(memcachedHost, ",")...)
		client.Timeout = memcachedTimeout
		remote = client
	}
	return NewWithRemote(maxSize, ttl, remote, log)
}

func NewWithRemote(maxSize int, ttl time.Duration, remote RemoteStore, log *logger.Logger) *TwoLevelCache {
	log.Info("Property cache initialized", "max_size", maxSize, "ttl", ttl, "memcached", remote != nil)
	return &TwoLevelCache{
		local:  ccache.New(ccache.Configure[*Entry]().MaxSize(int64(maxSize))),
		remote: remote,
		ttl:    ttl,
		log:    log,
	}
}

func (c *TwoLevelCache) Get(key string) (*Entry, bool) {
	key = normalizeKey(key)

	if item := c.local.Get(key); item != nil && !item.Expired() {
		c.log.Debug("cache hit", "level", "local", "key", key)
		return item.Value(), true
	}

	if c.remote == nil {
		return nil, false
	}

	item, err := c.remote.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			c.log.Warn("memcached get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(item.Value, &entry); err != nil {
		c.log.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}

	c.local.Set(key, &entry, c.ttl)
	c.log.Debug("cache hit", "level", "memcached", "key", key)
	return &entry, true
}

func (c *TwoLevelCache) Set(key string, entry *Entry) {
	key = normalizeKey(key)
	c.local.Set(key, entry, c.ttl)

	if c.remote == nil {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}
	item := &memcache.Item{
		Key:        key,
		Value:      data,
		Expiration: int32(c.ttl / time.Second),
	}
	if err := c.remote.Set(item); err != nil {
		c.log.Warn("memcached set failed", "key", key, "error", err)
	}
}

func (c *TwoLevelCache) Delete(key string) {
	key = normalizeKey(key)
	c.local.Delete(key)

	if c.remote == nil {
		return
	}
	if err := c.remote.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		c.log.Warn("memcached delete failed", "key", key, "error", err)
	}
}

func (c *TwoLevelCache) Stop() {
	c.local.Stop()
}

// normalizeKey makes any key safe for memcached: no whitespace or control
// characters and at most maxKeyLength bytes. Long or unsafe keys are hashed.
func normalizeKey(key string) string {
	safe := len(key) <= maxKeyLength
	for i := 0; safe && i < len(key); i++ {
		if key[i] <= ' ' || key[i] == 0x7f {
			safe = false
		}
	}
	if safe {
		return key
	}
	sum := sha256.Sum256([]byte(key))
	return "h:" + hex.EncodeToString(sum[:])
}
