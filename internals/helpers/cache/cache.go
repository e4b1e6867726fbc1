// Package cache is the tag-invalidated read cache in front of the database.
//
// Every entry carries its own tags plus "*", so revalidating a tag drops every entry
// that was built from it and clearing "*" empties the whole cache.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
)

// Tag names
const (
	TagUser          = "user"
	TagSite          = "site"
	TagRoom          = "room"
	TagActivity      = "activity"
	TagActivityGroup = "activityGroup"
	TagPlanning      = "planning"
	TagCalendar      = "calendar"
	TagPricing       = "pricing"
	TagClub          = "club"
	TagEvent         = "event"
	TagPage          = "page"
	TagCoach         = "coach"

	AllTag = "*"
)

const DefaultTTL = time.Hour

// Store keeps encoded values under a key, indexed by tags.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration) error
	InvalidateTags(ctx context.Context, tags ...string) error
	Clear(ctx context.Context) error
}

func GlobalTag(tag string) string { return "global:" + tag }

func UserTag(userID, tag string) string { return "user:" + userID + "-" + tag }

func IDTag(id, tag string) string { return "id:" + id + "-" + tag }

// Revalidation names what changed: the global tag always goes, the user and id tags when set.
type Revalidation struct {
	Tag    string
	UserID string
	ID     string
}

func (r Revalidation) Tags() []string {
	tags := []string{GlobalTag(r.Tag)}
	if r.UserID != "" {
		tags = append(tags, UserTag(r.UserID, r.Tag))
	}
	if r.ID != "" {
		tags = append(tags, IDTag(r.ID, r.Tag))
	}
	return tags
}

// Revalidate drops every entry carrying one of r's tags. Failures are logged, never returned:
// a stale read is better than a failed write.
func Revalidate(ctx context.Context, s Store, revs ...Revalidation) {
	if s == nil {
		return
	}
	var tags []string
	for _, r := range revs {
		tags = append(tags, r.Tags()...)
	}
	if err := s.InvalidateTags(ctx, tags...); err != nil {
		log.Printf("[CACHE] revalidate %v failed: %v", tags, err)
	}
}

// Remember returns the cached value under key, or computes, stores and returns it.
func Remember[T any](ctx context.Context, s Store, key string, tags []string, fn func() (T, error)) (T, error) {
	if s == nil {
		return fn()
	}
	if raw, ok, err := s.Get(ctx, key); err == nil && ok {
		var v T
		if err := sonic.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	} else if err != nil {
		log.Printf("[CACHE] get %s failed: %v", key, err)
	}

	v, err := fn()
	if err != nil {
		return v, err
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		log.Printf("[CACHE] encode %s failed: %v", key, err)
		return v, nil
	}
	all := append(append([]string(nil), tags...), AllTag)
	if err := s.Set(ctx, key, raw, all, DefaultTTL); err != nil {
		log.Printf("[CACHE] set %s failed: %v", key, err)
	}
	return v, nil
}
