package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

func TestVerifier_SignAndVerify(t *testing.T) {
	t.Parallel()

	v := NewVerifier("test-secret")
	id := model.Identity{UserID: "u1", UserName: "User One", Role: "bidder"}

	token, err := v.Sign(id, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestVerifier_Rejections(t *testing.T) {
	t.Parallel()

	v := NewVerifier("test-secret")
	id := model.Identity{UserID: "u1", UserName: "User One"}

	expired, err := v.Sign(id, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewVerifier("other-secret").Sign(id, time.Hour)
	require.NoError(t, err)

	// token asserting no user at all
	anonymous, err := v.Sign(model.Identity{}, time.Hour)
	require.NoError(t, err)

	// unsigned token must not pass even with valid-looking claims
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty_token", token: ""},
		{name: "garbage_token", token: "not-a-jwt"},
		{name: "expired_token", token: expired},
		{name: "wrong_secret", token: otherSecret},
		{name: "missing_user_id", token: anonymous},
		{name: "alg_none", token: noneToken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := v.Verify(tc.token)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidToken), "expected ErrInvalidToken, got: %v", err)
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		query    string
		expected string
	}{
		{name: "bearer_header", header: "Bearer abc123", expected: "abc123"},
		{name: "case_insensitive_scheme", header: "bearer abc123", expected: "abc123"},
		{name: "wrong_scheme", header: "Basic abc123", expected: ""},
		{name: "query_fallback", query: "abc123", expected: "abc123"},
		{name: "header_wins_over_query", header: "Bearer fromheader", query: "fromquery", expected: "fromheader"},
		{name: "nothing", expected: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			url := "/ws"
			if tc.query != "" {
				url += "?token=" + tc.query
			}
			req := httptest.NewRequest("GET", url, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			require.Equal(t, tc.expected, TokenFromRequest(req))
		})
	}
}
