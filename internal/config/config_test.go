package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDevConfig() *Config {
	return &Config{
		Port:               "8375",
		Env:                "development",
		DBPassword:         "password",
		GoogleTokenInfoURL: "https://oauth2.googleapis.com/tokeninfo",
		GoogleUserInfoURL:  "https://www.googleapis.com/oauth2/v3/userinfo",
	}
}

func validProdConfig() *Config {
	cfg := validDevConfig()
	cfg.Env = "production"
	cfg.GoogleClientID = "client-id.apps.googleusercontent.com"
	cfg.DBPassword = "s3cure-and-long"
	cfg.BlobAPIKey = "blob-key"
	cfg.DBSSLMode = "require"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("development defaults pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validDevConfig().Validate())
	})

	t.Run("port required", func(t *testing.T) {
		t.Parallel()
		cfg := validDevConfig()
		cfg.Port = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("google endpoints required", func(t *testing.T) {
		t.Parallel()
		cfg := validDevConfig()
		cfg.GoogleTokenInfoURL = ""
		assert.Error(t, cfg.Validate())

		cfg = validDevConfig()
		cfg.GoogleUserInfoURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production passes when fully configured", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validProdConfig().Validate())
	})

	t.Run("production requires google client id", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.GoogleClientID = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		t.Parallel()
		for _, password := range []string{"", "password"} {
			cfg := validProdConfig()
			cfg.DBPassword = password
			err := cfg.Validate()
			require.Error(t, err, "password %q", password)
			assert.Contains(t, err.Error(), "DB_PASSWORD")
		}
	})

	t.Run("production requires blob api key", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.BlobAPIKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BLOB_API_KEY")
	})

	t.Run("prod alias enforced like production", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.Env = "prod"
		cfg.BlobAPIKey = ""
		assert.Error(t, cfg.Validate())
	})
}
