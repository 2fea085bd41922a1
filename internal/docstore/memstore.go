package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// MemStore — потокобезопасная подмена Store для тестов. Данные проходят
// через JSON, поэтому типы значений совпадают с GormStore (числа —
// float64, время — строка RFC3339). Now подменяется в тестах.
type MemStore struct {
	mu     sync.Mutex
	docs   map[string]map[string]interface{}
	writes int

	Now func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		docs: make(map[string]map[string]interface{}),
		Now:  time.Now,
	}
}

func (s *MemStore) Get(ctx context.Context, path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	_, id, err := CollectionOf(path)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Data: deepCopy(data)}, nil
}

func (s *MemStore) Set(ctx context.Context, path string, fields map[string]interface{}, merge bool) error {
	return s.write(path, fields, merge, true)
}

func (s *MemStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return s.write(path, fields, true, false)
}

func (s *MemStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

func (s *MemStore) List(ctx context.Context, collection string) ([]*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []*Document
	for path, data := range s.docs {
		c, id, err := CollectionOf(path)
		if err != nil || c != collection {
			continue
		}
		docs = append(docs, &Document{ID: id, Data: deepCopy(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Writes возвращает число записей; тесты проверяют по нему
// идемпотентность бутстрапа.
func (s *MemStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemStore) write(path string, fields map[string]interface{}, merge, createMissing bool) error {
	if _, _, err := CollectionOf(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[path]
	if !ok && !createMissing {
		return ErrNotFound
	}

	data := map[string]interface{}{}
	if merge && ok {
		data = deepCopy(existing)
	}
	applyFields(data, fields, s.Now())

	s.docs[path] = normalize(data)
	s.writes++
	return nil
}

func deepCopy(data map[string]interface{}) map[string]interface{} {
	return normalize(data)
}

// normalize прогоняет значения через JSON, выравнивая типы с GormStore.
func normalize(data map[string]interface{}) map[string]interface{} {
	raw, err := json.Marshal(data)
	if err != nil {
		return map[string]interface{}{}
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}
