package auth

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RevocationList is an optional in-process blacklist of token ids.
// Disabled by default: logout is then a client-side token discard, which
// matches the stateless-token design. When enabled, revoked ids live in
// the cache only until the token would have expired anyway.
type RevocationList struct {
	cache *gocache.Cache
}

func NewRevocationList(enabled bool) *RevocationList {
	if !enabled {
		return &RevocationList{}
	}
	return &RevocationList{cache: gocache.New(TokenTTL, 10*time.Minute)}
}

func (r *RevocationList) Enabled() bool {
	return r.cache != nil
}

func (r *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	if r.cache == nil || tokenID == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	r.cache.Set(tokenID, struct{}{}, ttl)
}

func (r *RevocationList) Revoked(tokenID string) bool {
	if r.cache == nil || tokenID == "" {
		return false
	}
	_, found := r.cache.Get(tokenID)
	return found
}
