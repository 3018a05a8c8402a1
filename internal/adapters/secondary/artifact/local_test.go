package artifact

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mltrack/internal/core/domain"
)

func TestLocalStore_PutGet(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	uri, err := store.Put(context.Background(), "runs/abc/model.json", []byte(`{"trees":[]}`))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "file://"))
	assert.Contains(t, uri, "runs/abc/model.json")

	data, err := store.Get(context.Background(), "runs/abc/model.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"trees":[]}`), data)
}

func TestLocalStore_Overwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Put(context.Background(), "runs/abc/model.json", []byte("v1"))
	assert.NoError(t, err)
	_, err = store.Put(context.Background(), "runs/abc/model.json", []byte("v2"))
	assert.NoError(t, err)

	data, err := store.Get(context.Background(), "runs/abc/model.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestLocalStore_GetMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Get(context.Background(), "runs/nope/model.json")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestLocalStore_RejectsEscapingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	_, err = store.Put(context.Background(), "../outside", []byte("x"))
	assert.Error(t, err)

	_, err = store.Get(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
