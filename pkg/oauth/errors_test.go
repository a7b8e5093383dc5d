package oauth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOAuth2Error(t *testing.T) {
	t.Run("full error object", func(t *testing.T) {
		oauthErr := parseOAuth2Error(decode(t, `{
			"error":"invalid_grant",
			"error_description":"code expired",
			"error_uri":"https://example.com/errors/invalid_grant"
		}`))
		require.NotNil(t, oauthErr)
		assert.Equal(t, ErrorInvalidGrant, oauthErr.Code)
		assert.Equal(t, "code expired", oauthErr.Description)
		assert.Equal(t, "https://example.com/errors/invalid_grant", oauthErr.URI)
		assert.Equal(t, "invalid_grant: code expired (https://example.com/errors/invalid_grant)", oauthErr.Error())
	})

	t.Run("code only", func(t *testing.T) {
		oauthErr := parseOAuth2Error(decode(t, `{"error":"invalid_client"}`))
		require.NotNil(t, oauthErr)
		assert.Equal(t, &OAuth2Error{Code: ErrorInvalidClient}, oauthErr)
		assert.Equal(t, "invalid_client", oauthErr.Error())
	})

	t.Run("unrecognized code is kept", func(t *testing.T) {
		oauthErr := parseOAuth2Error(decode(t, `{"error":"bad_verification_code"}`))
		require.NotNil(t, oauthErr)
		assert.Equal(t, ErrorCode("bad_verification_code"), oauthErr.Code)
		assert.False(t, oauthErr.Code.Registered())
	})

	t.Run("token response is not an error", func(t *testing.T) {
		assert.Nil(t, parseOAuth2Error(decode(t, `{"token_type":"Bearer","access_token":"a"}`)))
	})

	t.Run("non-string error is ignored", func(t *testing.T) {
		assert.Nil(t, parseOAuth2Error(decode(t, `{"error":true}`)))
	})

	t.Run("non-object is not an error", func(t *testing.T) {
		assert.Nil(t, parseOAuth2Error(decode(t, `"invalid_client"`)))
	})
}

func TestErrorCode_Registered(t *testing.T) {
	for _, code := range []ErrorCode{
		ErrorInvalidRequest, ErrorInvalidClient, ErrorInvalidGrant,
		ErrorUnauthorizedClient, ErrorUnsupportedGrantType, ErrorInvalidScope,
	} {
		assert.True(t, code.Registered(), string(code))
	}
	assert.False(t, ErrorCode("access_denied").Registered())
}

func TestClientError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("requesting token: %w", NewTransportError(cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "requesting token: oauth transport error: connection refused", err.Error())

	kind, ok := ErrorKind(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)

	_, ok = ErrorKind(cause)
	assert.False(t, ok)
}

func TestIsOAuth2Error(t *testing.T) {
	err := &ClientError{Kind: KindOAuth2, Err: &OAuth2Error{Code: ErrorInvalidClient}}

	assert.True(t, IsOAuth2Error(err, ErrorInvalidClient))
	assert.False(t, IsOAuth2Error(err, ErrorInvalidGrant))
	assert.False(t, IsOAuth2Error(NewTransportError(errors.New("x")), ErrorInvalidClient))
	assert.False(t, IsOAuth2Error(nil, ErrorInvalidClient))
}

func TestWrapTransportError(t *testing.T) {
	jsonErr := NewJSONError(errors.New("unexpected EOF"))
	assert.Same(t, jsonErr, wrapTransportError(jsonErr))

	wrapped := wrapTransportError(errors.New("timeout"))
	kind, ok := ErrorKind(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)
}

func TestClientErrorKind_String(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "url", KindURL.String())
	assert.Equal(t, "json", KindJSON.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "oauth2", KindOAuth2.String())
	assert.Equal(t, "unknown", ClientErrorKind(99).String())
}
