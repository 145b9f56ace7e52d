package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		input   string
		want    NetAddress
		wantStr string
		errMsg  string
	}{
		{input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}, wantStr: "localhost:8080"},
		{input: "127.0.0.1:9090", want: NetAddress{Host: "127.0.0.1", Port: 9090}, wantStr: "127.0.0.1:9090"},
		{input: ":8080", want: NetAddress{Port: 8080}, wantStr: ":8080"},
		{input: "[::1]:8443", want: NetAddress{Host: "::1", Port: 8443}, wantStr: "[::1]:8443"},

		{input: "", errMsg: "host:port"},
		{input: "localhost8080", errMsg: "host:port"},
		{input: "a:b:c", errMsg: "host:port"},
		{input: "localhost:abc", errMsg: "invalid port"},
		{input: "localhost:", errMsg: "invalid port"},
		{input: "localhost:0", errMsg: "1..65535"},
		{input: "localhost:70000", errMsg: "1..65535"},
		{input: "notes.example.com:8080", errMsg: "incorrect IP-address"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Equal(t, NetAddress{}, addr, "failed Set must not touch the value")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
			assert.Equal(t, tt.wantStr, addr.String())
		})
	}

	var empty NetAddress
	assert.Empty(t, empty.String())
}

func TestParseFlags(t *testing.T) {
	t.Run("every flag", func(t *testing.T) {
		cfg, err := ParseFlags([]string{
			"-a", "127.0.0.1:3000",
			"-f", "/srv/blobs",
			"-d", "postgres://notes@db/notes",
			"-config", "/etc/notes.yaml",
			"-token-sign-key", "sign",
			"-token-issuer", "notes",
			"-token-duration", "45m",
			"-request-timeout", "20s",
			"-hash-key", "hmac",
		})
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:3000", cfg.Server.HTTPAddress)
		assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "/srv/blobs", cfg.Storage.Files.BinaryDataDir)
		assert.Equal(t, "postgres://notes@db/notes", cfg.Storage.DB.DSN)
		assert.Equal(t, "/etc/notes.yaml", cfg.FilePath)
		assert.Equal(t, App{TokenSignKey: "sign", TokenIssuer: "notes", TokenDuration: 45 * time.Minute, HashKey: "hmac"}, cfg.App)
	})

	t.Run("nothing set leaves zero values for the merge", func(t *testing.T) {
		cfg, err := ParseFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, &StructuredConfig{}, cfg)
	})

	for name, args := range map[string][]string{
		"bad address":  {"-a", "localhost"},
		"bad duration": {"-token-duration", "soon"},
		"unknown flag": {"-verbose"},
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := ParseFlags(args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
