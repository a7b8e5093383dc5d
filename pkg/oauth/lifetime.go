package oauth

import (
	"math"
	"time"
)

// Lifetime is the closed set of token lifetime strategies.
//
// A lifetime is chosen per provider at compile time: Bearer[Static] never
// expires, Bearer[Expiring] expires without a way to renew it, and
// Bearer[Refresh] expires and carries a refresh token.
type Lifetime interface {
	Static | Expiring | Refresh

	// Expired reports whether the access token is no longer valid.
	Expired() bool
}

// Static is the lifetime of a token that never expires.
type Static struct{}

// Expired always returns false.
func (Static) Expired() bool { return false }

// Expiring is the lifetime of a token that expires and cannot be refreshed.
type Expiring struct {
	expires time.Time
}

// NewExpiring returns an Expiring lifetime ending at expires.
func NewExpiring(expires time.Time) Expiring {
	return Expiring{expires: expires}
}

// Expires returns the expiry time of the access token.
func (e Expiring) Expires() time.Time { return e.expires }

// Expired reports whether the expiry time is strictly in the past.
func (e Expiring) Expired() bool { return e.expires.Before(time.Now()) }

// Refresh is the lifetime of an expiring token that can be refreshed.
type Refresh struct {
	refreshToken string
	expires      time.Time
}

// NewRefresh returns a Refresh lifetime with the given refresh token and expiry.
func NewRefresh(refreshToken string, expires time.Time) Refresh {
	return Refresh{refreshToken: refreshToken, expires: expires}
}

// RefreshToken returns the refresh token (RFC 6749 section 1.5).
func (r Refresh) RefreshToken() string { return r.refreshToken }

// Expires returns the expiry time of the access token.
func (r Refresh) Expires() time.Time { return r.expires }

// Expired reports whether the expiry time is strictly in the past.
func (r Refresh) Expired() bool { return r.expires.Before(time.Now()) }

// maxExpiresIn is the largest expires_in that fits in a time.Duration.
const maxExpiresIn = int64(math.MaxInt64 / int64(time.Second))

// expiresAt converts expires_in to an absolute time. Negative values and
// values that would overflow time.Duration clamp to now.
func expiresAt(expiresIn int64) time.Time {
	now := time.Now()
	if expiresIn <= 0 || expiresIn > maxExpiresIn {
		return now
	}
	return now.Add(time.Duration(expiresIn) * time.Second)
}

func parseExpiring(obj responseObject) (Expiring, error) {
	if obj.has("refresh_token") {
		return Expiring{}, errUnexpectedField("refresh_token")
	}
	expiresIn, err := obj.requiredInt("expires_in")
	if err != nil {
		return Expiring{}, err
	}
	return Expiring{expires: expiresAt(expiresIn)}, nil
}

func parseRefresh(obj responseObject, prev *Refresh) (Refresh, error) {
	refreshToken, ok := obj.optionalString("refresh_token")
	if !ok {
		if prev == nil {
			return Refresh{}, errExpectedFieldType("refresh_token", "string")
		}
		refreshToken = prev.refreshToken
	}
	expiresIn, err := obj.requiredInt("expires_in")
	if err != nil {
		return Refresh{}, err
	}
	return Refresh{refreshToken: refreshToken, expires: expiresAt(expiresIn)}, nil
}

// parseLifetime builds a lifetime of type L from a token response.
func parseLifetime[L Lifetime](v any) (L, error) {
	var lifetime L
	obj, err := asObject(v)
	if err != nil {
		return lifetime, err
	}

	switch l := any(&lifetime).(type) {
	case *Static:
	case *Expiring:
		*l, err = parseExpiring(obj)
	case *Refresh:
		*l, err = parseRefresh(obj, nil)
	}
	return lifetime, err
}

// parseLifetimeInherit builds a lifetime from a refresh response. Fields a
// provider may omit on refresh are taken from prev.
func parseLifetimeInherit[L Lifetime](v any, prev L) (L, error) {
	var lifetime L
	obj, err := asObject(v)
	if err != nil {
		return lifetime, err
	}

	switch l := any(&lifetime).(type) {
	case *Static:
	case *Expiring:
		*l, err = parseExpiring(obj)
	case *Refresh:
		p := any(prev).(Refresh)
		*l, err = parseRefresh(obj, &p)
	}
	return lifetime, err
}
