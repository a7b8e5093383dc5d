package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultMetadataCacheTTL is the default TTL for cached provider metadata.
const DefaultMetadataCacheTTL = 30 * time.Minute

// Metadata is the subset of OAuth 2.0 Authorization Server Metadata
// (RFC 8414) needed to build a Provider.
type Metadata struct {
	// Issuer is the authorization server's issuer identifier.
	Issuer string `json:"issuer"`

	// AuthorizationEndpoint is the URL of the authorization endpoint.
	AuthorizationEndpoint string `json:"authorization_endpoint"`

	// TokenEndpoint is the URL of the token endpoint.
	TokenEndpoint string `json:"token_endpoint"`

	// ScopesSupported lists the OAuth 2.0 scope values supported.
	ScopesSupported []string `json:"scopes_supported,omitempty"`

	// GrantTypesSupported lists the grant types supported.
	GrantTypesSupported []string `json:"grant_types_supported,omitempty"`

	// TokenEndpointAuthMethodsSupported lists the client authentication methods.
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported,omitempty"`
}

// SupportsAuthorizationCode reports whether the server advertises the
// authorization_code grant. RFC 8414 defaults an absent list to
// authorization_code and implicit.
func (m *Metadata) SupportsAuthorizationCode() bool {
	if len(m.GrantTypesSupported) == 0 {
		return true
	}
	for _, grant := range m.GrantTypesSupported {
		if grant == "authorization_code" {
			return true
		}
	}
	return false
}

// credentialsInBody reports whether the server only accepts client_secret_post.
func (m *Metadata) credentialsInBody() bool {
	methods := m.TokenEndpointAuthMethodsSupported
	if len(methods) == 0 {
		return false
	}
	for _, method := range methods {
		if method == "client_secret_basic" {
			return false
		}
	}
	for _, method := range methods {
		if method == "client_secret_post" {
			return true
		}
	}
	return false
}

// ProviderFromMetadata builds a Provider from discovered metadata.
func ProviderFromMetadata[L Lifetime](name string, md *Metadata) (Provider[L], error) {
	p := Provider[L]{
		Name:              name,
		AuthURI:           md.AuthorizationEndpoint,
		TokenURI:          md.TokenEndpoint,
		CredentialsInBody: md.credentialsInBody(),
	}
	if err := p.Validate(); err != nil {
		return Provider[L]{}, err
	}
	if !md.SupportsAuthorizationCode() {
		return Provider[L]{}, fmt.Errorf("issuer %s does not support the authorization_code grant", md.Issuer)
	}
	return p, nil
}

// metadataCacheEntry holds cached metadata with its timestamp.
type metadataCacheEntry struct {
	metadata  *Metadata
	fetchedAt time.Time
}

// Discoverer fetches provider metadata from well-known endpoints.
type Discoverer struct {
	httpClient *http.Client
	logger     *slog.Logger

	metadataMu    sync.RWMutex
	metadataCache map[string]*metadataCacheEntry
	metadataTTL   time.Duration

	// deduplicates concurrent fetches for the same issuer
	metadataGroup singleflight.Group
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithDiscoveryHTTPClient sets a custom HTTP client.
func WithDiscoveryHTTPClient(httpClient *http.Client) DiscovererOption {
	return func(d *Discoverer) {
		d.httpClient = httpClient
	}
}

// WithDiscoveryLogger sets a custom logger.
func WithDiscoveryLogger(logger *slog.Logger) DiscovererOption {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// WithMetadataCacheTTL sets the metadata cache TTL.
func WithMetadataCacheTTL(ttl time.Duration) DiscovererOption {
	return func(d *Discoverer) {
		d.metadataTTL = ttl
	}
}

// NewDiscoverer creates a Discoverer.
func NewDiscoverer(opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		httpClient:    &http.Client{Timeout: DefaultHTTPTimeout},
		logger:        slog.Default(),
		metadataCache: make(map[string]*metadataCacheEntry),
		metadataTTL:   DefaultMetadataCacheTTL,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover fetches metadata for issuer. It tries RFC 8414
// (/.well-known/oauth-authorization-server) first, then falls back to
// OpenID Connect (/.well-known/openid-configuration).
//
// Results are cached for the configured TTL.
func (d *Discoverer) Discover(ctx context.Context, issuer string) (*Metadata, error) {
	issuer = strings.TrimSuffix(issuer, "/")

	if md, ok := d.cached(issuer); ok {
		return md, nil
	}

	result, err, _ := d.metadataGroup.Do(issuer, func() (interface{}, error) {
		// Another caller may have filled the cache while we waited.
		if md, ok := d.cached(issuer); ok {
			return md, nil
		}
		return d.doDiscover(ctx, issuer)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Metadata), nil
}

func (d *Discoverer) cached(issuer string) (*Metadata, bool) {
	d.metadataMu.RLock()
	defer d.metadataMu.RUnlock()

	entry, ok := d.metadataCache[issuer]
	if !ok || time.Since(entry.fetchedAt) >= d.metadataTTL {
		return nil, false
	}
	return entry.metadata, true
}

func (d *Discoverer) doDiscover(ctx context.Context, issuer string) (*Metadata, error) {
	md, err := d.fetchMetadata(ctx, issuer+"/.well-known/oauth-authorization-server")
	if err == nil {
		d.cacheMetadata(issuer, md)
		return md, nil
	}

	d.logger.Debug("RFC 8414 metadata fetch failed, trying OIDC",
		"issuer", issuer,
		"error", err)

	md, err = d.fetchMetadata(ctx, issuer+"/.well-known/openid-configuration")
	if err == nil {
		d.cacheMetadata(issuer, md)
		return md, nil
	}

	return nil, fmt.Errorf("failed to discover OAuth metadata for %s: %w", issuer, err)
}

func (d *Discoverer) fetchMetadata(ctx context.Context, metadataURL string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	var md Metadata
	if err := json.Unmarshal(body, &md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &md, nil
}

func (d *Discoverer) cacheMetadata(issuer string, md *Metadata) {
	d.metadataMu.Lock()
	d.metadataCache[issuer] = &metadataCacheEntry{
		metadata:  md,
		fetchedAt: time.Now(),
	}
	d.metadataMu.Unlock()

	d.logger.Debug("Cached OAuth metadata",
		"issuer", issuer,
		"authorization_endpoint", md.AuthorizationEndpoint,
		"token_endpoint", md.TokenEndpoint)
}

// ClearCache drops all cached metadata.
func (d *Discoverer) ClearCache() {
	d.metadataMu.Lock()
	d.metadataCache = make(map[string]*metadataCacheEntry)
	d.metadataMu.Unlock()
}
