package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionOf(t *testing.T) {
	tests := []struct {
		path       string
		collection string
		id         string
		wantErr    bool
	}{
		{path: "users/u1/skills/vowels-checked", collection: "users/u1/skills", id: "vowels-checked"},
		{path: "users/u1", collection: "users", id: "u1"},
		{path: "users/u1/skills", wantErr: true},
		{path: "users", wantErr: true},
		{path: "users//skills/x", wantErr: true},
		{path: "", wantErr: true},
	}

	for _, tt := range tests {
		collection, id, err := CollectionOf(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.collection, collection)
		assert.Equal(t, tt.id, id)
	}
}

func TestMemStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	err := store.Set(ctx, "users/u1/skills/s1", map[string]interface{}{
		"level":    2,
		"progress": 75,
	}, false)
	require.NoError(t, err)

	doc, err := store.Get(ctx, "users/u1/skills/s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", doc.ID)
	// числа приходят как float64, как и из JSON-колонки
	assert.Equal(t, float64(2), doc.Data["level"])
	assert.Equal(t, float64(75), doc.Data["progress"])
}

func TestMemStoreGetNotFound(t *testing.T) {
	store := NewMemStore()
	_, err := store.Get(context.Background(), "users/u1/skills/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreSetMerge(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, store.Set(ctx, "users/u1/dictionary/w1", map[string]interface{}{
		"word":     "орфография",
		"mastered": true,
	}, false))

	// merge сохраняет непереданные поля
	require.NoError(t, store.Set(ctx, "users/u1/dictionary/w1", map[string]interface{}{
		"word": "Орфография",
	}, true))

	doc, err := store.Get(ctx, "users/u1/dictionary/w1")
	require.NoError(t, err)
	assert.Equal(t, "Орфография", doc.Data["word"])
	assert.Equal(t, true, doc.Data["mastered"])

	// без merge документ перезаписывается целиком
	require.NoError(t, store.Set(ctx, "users/u1/dictionary/w1", map[string]interface{}{
		"word": "пунктуация",
	}, false))

	doc, err = store.Get(ctx, "users/u1/dictionary/w1")
	require.NoError(t, err)
	_, hasMastered := doc.Data["mastered"]
	assert.False(t, hasMastered)
}

func TestMemStoreUpdateMissing(t *testing.T) {
	store := NewMemStore()
	err := store.Update(context.Background(), "users/u1/skills/missing", map[string]interface{}{
		"level": 1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreIncrement(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Set(ctx, "users/u1/stats/overall", map[string]interface{}{
			"lessonsCompleted": Increment(1),
		}, true))
	}

	doc, err := store.Get(ctx, "users/u1/stats/overall")
	require.NoError(t, err)
	assert.Equal(t, float64(3), doc.Data["lessonsCompleted"])
}

func TestMemStoreArrayUnion(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, store.Set(ctx, "users/u1/exerciseResults/e1", map[string]interface{}{
		"attemptHistory": ArrayUnion(map[string]interface{}{"score": 50}),
	}, true))
	require.NoError(t, store.Set(ctx, "users/u1/exerciseResults/e1", map[string]interface{}{
		"attemptHistory": ArrayUnion(map[string]interface{}{"score": 90}),
	}, true))

	doc, err := store.Get(ctx, "users/u1/exerciseResults/e1")
	require.NoError(t, err)
	history, ok := doc.Data["attemptHistory"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 2)

	first := history[0].(map[string]interface{})
	second := history[1].(map[string]interface{})
	assert.Equal(t, float64(50), first["score"])
	assert.Equal(t, float64(90), second["score"])
}

func TestMemStoreServerTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return fixed }

	require.NoError(t, store.Set(ctx, "users/u1/skills/s1", map[string]interface{}{
		"lastPracticed": ServerTimestamp(),
	}, false))

	doc, err := store.Get(ctx, "users/u1/skills/s1")
	require.NoError(t, err)

	raw, ok := doc.Data["lastPracticed"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(fixed))
}

func TestMemStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, store.Set(ctx, "users/u1/skills/b", map[string]interface{}{"order": 2}, false))
	require.NoError(t, store.Set(ctx, "users/u1/skills/a", map[string]interface{}{"order": 1}, false))
	require.NoError(t, store.Set(ctx, "users/u2/skills/c", map[string]interface{}{"order": 3}, false))

	docs, err := store.List(ctx, "users/u1/skills")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestMemStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, store.Set(ctx, "users/u1/dictionary/w1", map[string]interface{}{"word": "слово"}, false))
	require.NoError(t, store.Delete(ctx, "users/u1/dictionary/w1"))

	_, err := store.Get(ctx, "users/u1/dictionary/w1")
	assert.ErrorIs(t, err, ErrNotFound)

	// повторное удаление не ошибка
	assert.NoError(t, store.Delete(ctx, "users/u1/dictionary/w1"))
}
