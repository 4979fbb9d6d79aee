package gcpauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
)

// DefaultExpirySkew is subtracted from a credential's lifetime when deciding
// whether it can still be handed out.
const DefaultExpirySkew = 1 * time.Minute

// Credential is a bearer token granted for a set of scopes. It is only ever
// consumed to build an Authorization header and is replaced on expiry.
type Credential struct {
	Token  string
	Scopes []string
	Expiry time.Time
}

// expiredWithin reports whether the credential expires within the given skew.
// A zero expiry means the source did not report one and the credential is
// treated as non-expiring.
func (c *Credential) expiredWithin(skew time.Duration) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Until(c.Expiry) <= skew
}

// TokenSource acquires a fresh credential for a scope set. Implementations
// must be safe for concurrent use.
type TokenSource interface {
	Token(ctx context.Context, scopes []string) (*Credential, error)
}

// ADCSource acquires credentials through Google application-default
// credential discovery: GOOGLE_APPLICATION_CREDENTIALS pointing at a
// service-account key file, workload identity, or the metadata server.
// A missing credential source is a configuration error, not a retryable one.
type ADCSource struct{}

// Token acquires a fresh token for the scopes via ADC discovery.
func (ADCSource) Token(ctx context.Context, scopes []string) (*Credential, error) {
	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover application default credentials: %w", err)
	}

	tok, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}

	return &Credential{
		Token:  tok.AccessToken,
		Scopes: scopes,
		Expiry: tok.Expiry,
	}, nil
}

// Provider hands out bearer credentials for requested scope sets, reusing a
// cached credential while it is still valid. It is constructed once at
// process start and injected into every client that needs it.
type Provider struct {
	source TokenSource
	cache  *credentialCache
	group  singleflight.Group
}

// NewProvider creates a Provider backed by the given source.
func NewProvider(source TokenSource) *Provider {
	return NewProviderWithSkew(source, DefaultExpirySkew)
}

// NewProviderWithSkew creates a Provider with a custom expiry skew.
func NewProviderWithSkew(source TokenSource, skew time.Duration) *Provider {
	return &Provider{
		source: source,
		cache:  newCredentialCache(skew),
	}
}

// Token returns a credential valid for at least the given scopes. Concurrent
// callers requesting the same scope set while no cached credential exists
// share a single acquisition; the source is never invoked twice for one
// refresh. Acquisition failures are surfaced to the caller and never retried
// here, since a misconfigured credential source cannot be fixed by retrying.
func (p *Provider) Token(ctx context.Context, scopes []string) (*Credential, error) {
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}

	key := scopeKey(scopes)
	if cred, ok := p.cache.Get(key); ok {
		return cred, nil
	}

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		// Losers of the race see the winner's credential here.
		if cred, ok := p.cache.Get(key); ok {
			return cred, nil
		}

		cred, err := p.source.Token(ctx, scopes)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire credential: %w", err)
		}

		p.cache.Set(key, cred)
		return cred, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Credential), nil
}

// Invalidate drops any cached credential for the scope set, forcing the next
// Token call to acquire a fresh one.
func (p *Provider) Invalidate(scopes []string) {
	p.cache.Delete(scopeKey(scopes))
}

func scopeKey(scopes []string) string {
	return strings.Join(scopes, " ")
}
