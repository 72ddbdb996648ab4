package cache

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"smarthost/pkg/logger"
	"smarthost/pkg/model"

	"github.com/bradfitz/gomemcache/memcache"
)

type fakeRemote struct {
	mu     sync.Mutex
	items  map[string]*memcache.Item
	getErr error
	sets   int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{items: map[string]*memcache.Item{}}
}

func (f *fakeRemote) Get(key string) (*memcache.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	item, ok := f.items[key]
	if !ok {
		return nil, memcache.ErrCacheMiss
	}
	return item, nil
}

func (f *fakeRemote) Set(item *memcache.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.Key] = item
	f.sets++
	return nil
}

func (f *fakeRemote) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[key]; !ok {
		return memcache.ErrCacheMiss
	}
	delete(f.items, key)
	return nil
}

func sampleEntry() *Entry {
	return &Entry{
		Properties: []*model.Property{{ID: "p1", Title: "Loft", Price: 120}},
		Total:      1,
	}
}

func TestTwoLevelCache_LocalOnly(t *testing.T) {
	c := NewWithRemote(10, time.Minute, nil, logger.Discard())
	defer c.Stop()

	if _, ok := c.Get("featured:8"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set("featured:8", sampleEntry())
	got, ok := c.Get("featured:8")
	if !ok || got.Total != 1 || got.Properties[0].Title != "Loft" {
		t.Fatalf("Get() = %+v, %v", got, ok)
	}

	c.Delete("featured:8")
	if _, ok := c.Get("featured:8"); ok {
		t.Error("deleted key should miss")
	}
}

func TestTwoLevelCache_WritesThroughToRemote(t *testing.T) {
	remote := newFakeRemote()
	c := NewWithRemote(10, 90*time.Second, remote, logger.Discard())
	defer c.Stop()

	c.Set("list:12:0", sampleEntry())

	item, ok := remote.items["list:12:0"]
	if !ok {
		t.Fatal("entry should be written to memcached")
	}
	if item.Expiration != 90 {
		t.Errorf("Expiration = %d, want 90", item.Expiration)
	}
	if !strings.Contains(string(item.Value), `"title":"Loft"`) {
		t.Errorf("value = %s", item.Value)
	}
}

func TestTwoLevelCache_FallsBackToRemote(t *testing.T) {
	remote := newFakeRemote()
	writer := NewWithRemote(10, time.Minute, remote, logger.Discard())
	writer.Set("detail:p1", sampleEntry())
	writer.Stop()

	reader := NewWithRemote(10, time.Minute, remote, logger.Discard())
	defer reader.Stop()

	got, ok := reader.Get("detail:p1")
	if !ok || got.Properties[0].ID != "p1" || got.Properties[0].Price != 120 {
		t.Fatalf("Get() = %+v, %v", got, ok)
	}

	remote.getErr = errors.New("memcached down")
	if _, ok := reader.Get("detail:p1"); !ok {
		t.Error("second read should be served from the local level")
	}
}

func TestTwoLevelCache_RemoteErrorsAreMisses(t *testing.T) {
	remote := newFakeRemote()
	remote.getErr = errors.New("connection refused")
	c := NewWithRemote(10, time.Minute, remote, logger.Discard())
	defer c.Stop()

	if _, ok := c.Get("anything"); ok {
		t.Error("remote failure should be a miss")
	}

	remote.getErr = nil
	remote.items["garbage"] = &memcache.Item{Key: "garbage", Value: []byte("{not json")}
	if _, ok := c.Get("garbage"); ok {
		t.Error("undecodable entry should be a miss")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		hashed bool
	}{
		{name: "plain", key: "list:12:0"},
		{name: "with space", key: "search:Rio de Janeiro", hashed: true},
		{name: "too long", key: strings.Repeat("k", maxKeyLength+1), hashed: true},
		{name: "at limit", key: strings.Repeat("k", maxKeyLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeKey(tt.key)
			if tt.hashed {
				if got == tt.key || !strings.HasPrefix(got, "h:") || len(got) != 66 {
					t.Errorf("normalizeKey() = %q, want a hashed key", got)
				}
				if normalizeKey(tt.key) != got {
					t.Error("hashing must be deterministic")
				}
				return
			}
			if got != tt.key {
				t.Errorf("normalizeKey() = %q, want unchanged", got)
			}
		})
	}
}
