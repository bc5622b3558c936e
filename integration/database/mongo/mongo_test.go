package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/integration/database/mongo"
)

func TestNew_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}

func TestNewWithDatabase_EmptyName(t *testing.T) {
	t.Parallel()

	cfg := mongo.DefaultConfig()
	cfg.ConnectionURL = "mongodb://localhost:27017"
	cfg.Database = ""

	_, err := mongo.NewWithDatabase(context.Background(), cfg)
	assert.ErrorIs(t, err, mongo.ErrEmptyDatabaseName)
}

func TestNew_InvalidURI(t *testing.T) {
	t.Parallel()

	cfg := mongo.DefaultConfig()
	cfg.ConnectionURL = "not-a-mongo-uri"
	cfg.RetryAttempts = 1
	cfg.RetryInterval = 0

	_, err := mongo.New(context.Background(), cfg)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, mongo.Healthcheck(nil)(context.Background()), mongo.ErrHealthcheckFailed)
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := mongo.DefaultConfig()
	assert.False(t, cfg.Enabled())
	assert.Equal(t, "folio", cfg.Database)
	assert.EqualValues(t, 100, cfg.MaxPoolSize)
}
