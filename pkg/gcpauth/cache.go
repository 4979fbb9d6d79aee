package gcpauth

import (
	"sync"
	"time"
)

// credentialCache is a thread-safe cache of credentials keyed by scope set.
// Entries expire with the credential they hold, minus a safety skew so a
// token is never handed out moments before the remote service rejects it.
type credentialCache struct {
	mutex sync.RWMutex
	items map[string]*Credential
	skew  time.Duration
}

func newCredentialCache(skew time.Duration) *credentialCache {
	return &credentialCache{
		items: make(map[string]*Credential),
		skew:  skew,
	}
}

// Get returns the cached credential for the key if it is still usable.
func (c *credentialCache) Get(key string) (*Credential, bool) {
	c.mutex.RLock()
	cred, exists := c.items[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}
	if cred.expiredWithin(c.skew) {
		c.Delete(key)
		return nil, false
	}
	return cred, true
}

// Set stores a credential under the key, replacing any previous entry.
func (c *credentialCache) Set(key string, cred *Credential) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = cred
}

// Delete removes a credential from the cache.
func (c *credentialCache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Clear removes all cached credentials.
func (c *credentialCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]*Credential)
}
