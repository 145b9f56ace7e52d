package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "note-server"
	testSignKey = "secret-key"
)

func TestGenerateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 123, time.Hour, testSignKey)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(123), token.UserID)
	assert.Equal(t, testIssuer, token.Issuer)
	assert.Equal(t, "123", token.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry(), 2*time.Second)

	for name, params := range map[string]struct {
		issuer   string
		duration time.Duration
		key      string
	}{
		"empty issuer":      {"", time.Hour, testSignKey},
		"zero duration":     {testIssuer, 0, testSignKey},
		"negative duration": {testIssuer, -time.Minute, testSignKey},
		"empty key":         {testIssuer, time.Hour, ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := GenerateJWTToken(params.issuer, 1, params.duration, params.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken(t *testing.T) {
	valid, err := GenerateJWTToken(testIssuer, 7, time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(valid.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, valid.SignedString, parsed.String())

	// токен с прошедшим сроком действия
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredStr, err := expired.SignedString([]byte(testSignKey))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubjectStr, err := noSubject.SignedString([]byte(testSignKey))
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: testIssuer, Subject: "7"})
	noExpiryStr, err := noExpiry.SignedString([]byte(testSignKey))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{name: "wrong key", token: valid.SignedString, key: "other", issuer: testIssuer},
		{name: "wrong issuer", token: valid.SignedString, key: testSignKey, issuer: "someone-else"},
		{name: "expired", token: expiredStr, key: testSignKey, issuer: testIssuer},
		{name: "missing subject", token: noSubjectStr, key: testSignKey, issuer: testIssuer},
		{name: "missing expiry", token: noExpiryStr, key: testSignKey, issuer: testIssuer},
		{name: "malformed", token: "not.a.token", key: testSignKey, issuer: testIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "  bearer token ", want: "token"},
		{header: "Basic dXNlcg==", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnverifiedToken(t *testing.T) {
	issued, err := GenerateJWTToken("issuer", 77, time.Hour, "key")
	require.NoError(t, err)

	token, err := ParseUnverifiedToken(issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(77), token.UserID)
	assert.Equal(t, issued.SignedString, token.String())
	assert.WithinDuration(t, issued.Expiry(), token.Expiry(), time.Second)

	_, err = ParseUnverifiedToken("garbage")
	assert.Error(t, err)
}
