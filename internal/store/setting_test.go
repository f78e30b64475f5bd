package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository_SetGet(t *testing.T) {
	repo := newTestStore(t).Settings()

	require.NoError(t, repo.Set("camera.mirror", "false"))

	got, err := repo.Get("camera.mirror")
	require.NoError(t, err)
	assert.Equal(t, "camera.mirror", got.Key)
	assert.Equal(t, "false", got.Value)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSettingRepository_SetOverwrites(t *testing.T) {
	repo := newTestStore(t).Settings()

	require.NoError(t, repo.Set("gesture.pinchThreshold", "20"))
	require.NoError(t, repo.Set("gesture.pinchThreshold", "35"))

	got, err := repo.Get("gesture.pinchThreshold")
	require.NoError(t, err)
	assert.Equal(t, "35", got.Value)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettingRepository_GetMissing(t *testing.T) {
	repo := newTestStore(t).Settings()

	_, err := repo.Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSettingRepository_ListOrdered(t *testing.T) {
	repo := newTestStore(t).Settings()

	require.NoError(t, repo.Set("log.level", "debug"))
	require.NoError(t, repo.Set("audio.enabled", "false"))
	require.NoError(t, repo.Set("gesture.preview", "true"))

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "audio.enabled", all[0].Key)
	assert.Equal(t, "gesture.preview", all[1].Key)
	assert.Equal(t, "log.level", all[2].Key)
}

func TestSettingRepository_Map(t *testing.T) {
	repo := newTestStore(t).Settings()

	m, err := repo.Map()
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, repo.Set("a", "1"))
	require.NoError(t, repo.Set("b", "2"))

	m, err = repo.Map()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, m)
}

func TestSettingRepository_Delete(t *testing.T) {
	repo := newTestStore(t).Settings()

	require.NoError(t, repo.Set("audio.volume", "0.8"))
	require.NoError(t, repo.Delete("audio.volume"))

	_, err := repo.Get("audio.volume")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete("audio.volume"), ErrNotFound)
}
