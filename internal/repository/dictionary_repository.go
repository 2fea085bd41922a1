package repository

import (
	"context"

	"github.com/SilverKain/Orthography/internal/docstore"
	"github.com/SilverKain/Orthography/internal/model"
)

type DictionaryRepository struct {
	Store docstore.Store
}

func NewDictionaryRepository(store docstore.Store) *DictionaryRepository {
	return &DictionaryRepository{Store: store}
}

func (r *DictionaryRepository) Get(ctx context.Context, uid, wordID string) (*model.DictionaryEntry, error) {
	doc, err := r.Store.Get(ctx, userPath(uid, "dictionary", wordID))
	if err != nil {
		return nil, err
	}
	var entry model.DictionaryEntry
	if err := decodeDocument(doc, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *DictionaryRepository) List(ctx context.Context, uid string) (map[string]model.DictionaryEntry, error) {
	docs, err := r.Store.List(ctx, userCollection(uid, "dictionary"))
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.DictionaryEntry, len(docs))
	for _, doc := range docs {
		var entry model.DictionaryEntry
		if err := decodeDocument(doc, &entry); err != nil {
			return nil, err
		}
		out[doc.ID] = entry
	}
	return out, nil
}

// Save делает merge-запись: повторное добавление того же
// нормализованного слова перезаписывает определение, сохраняя
// возможные дополнительные поля.
func (r *DictionaryRepository) Save(ctx context.Context, uid, wordID string, entry model.DictionaryEntry) error {
	fields := map[string]interface{}{
		"word":       entry.Word,
		"definition": entry.Definition,
		"example":    entry.Example,
		"mastered":   entry.Mastered,
		"addedAt":    docstore.ServerTimestamp(),
	}
	return r.Store.Set(ctx, userPath(uid, "dictionary", wordID), fields, true)
}

func (r *DictionaryRepository) SetMastered(ctx context.Context, uid, wordID string, mastered bool) error {
	fields := map[string]interface{}{
		"mastered":   mastered,
		"masteredAt": nil,
	}
	if mastered {
		fields["masteredAt"] = docstore.ServerTimestamp()
	}
	return r.Store.Update(ctx, userPath(uid, "dictionary", wordID), fields)
}

func (r *DictionaryRepository) Update(ctx context.Context, uid, wordID string, updates map[string]interface{}) error {
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields["updatedAt"] = docstore.ServerTimestamp()
	return r.Store.Update(ctx, userPath(uid, "dictionary", wordID), fields)
}

func (r *DictionaryRepository) Delete(ctx context.Context, uid, wordID string) error {
	return r.Store.Delete(ctx, userPath(uid, "dictionary", wordID))
}
