package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/pkg/config"
)

func TestOpenBackendMemory(t *testing.T) {
	cfg := &config.Config{DocStore: config.DocStoreConfig{Driver: config.DocStoreMemory}}

	backend, err := OpenBackend(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, config.DocStoreMemory, backend.Driver)
	assert.IsType(t, &MemoryStore{}, backend.Store)
	assert.NoError(t, backend.Ping(context.Background()))
	assert.NoError(t, backend.Close(context.Background()))
}

func TestOpenBackendUnknownDriver(t *testing.T) {
	cfg := &config.Config{DocStore: config.DocStoreConfig{Driver: "cassandra"}}

	_, err := OpenBackend(context.Background(), cfg)

	assert.ErrorContains(t, err, "cassandra")
}
