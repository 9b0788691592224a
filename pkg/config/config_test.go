package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DocStoreMemory, cfg.DocStore.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "UTC", cfg.Portal.TimeZone)
	assert.True(t, cfg.Lifecycle.Enabled)
	assert.Equal(t, 2, cfg.Audit.Workers)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DOCSTORE_DRIVER", " Mongo ")
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	v.Set("JWT_EXPIRATION", "not-a-duration")
	v.Set("AUDIT_RETRY_DELAY", "250ms")

	cfg := fromViper(v)

	assert.Equal(t, DocStoreMongo, cfg.DocStore.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 250*time.Millisecond, cfg.Audit.RetryDelay)
}
