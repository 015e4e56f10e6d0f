package natskv

import (
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/persistence"
)

func TestConnectRejectsEmptyBucket(t *testing.T) {
	_, err := Connect(nil, Config{URLs: []string{"nats://127.0.0.1:4222"}})
	assert.Error(t, err)
}

func TestKeyForNamespacesPersonIDs(t *testing.T) {
	assert.Equal(t, "person.a", keyFor("a"))
}

func TestIsAlreadyExistsError(t *testing.T) {
	assert.True(t, isAlreadyExistsError(errors.New("stream name already in use")))
	assert.False(t, isAlreadyExistsError(errors.New("connection refused")))
	assert.False(t, isAlreadyExistsError(nil))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, isNotFoundError(jetstream.ErrKeyNotFound))
	assert.True(t, isNotFoundError(errors.New("key not found")))
	assert.False(t, isNotFoundError(errors.New("connection refused")))
	assert.False(t, isNotFoundError(nil))
}

func TestIsNoKeysError(t *testing.T) {
	assert.True(t, isNoKeysError(jetstream.ErrNoKeysFound))
	assert.False(t, isNoKeysError(errors.New("connection refused")))
}

func TestNotFoundErrIsClassifiedAsReference(t *testing.T) {
	assert.True(t, famerrors.IsReference(persistence.NotFoundErr("natskv")))
}
