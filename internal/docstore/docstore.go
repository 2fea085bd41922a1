// Package docstore предоставляет путь-адресуемое документное хранилище
// в духе users/{uid}/{collection}/{docId}. Сервисы получают Store как
// зависимость, в тестах подставляется MemStore.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Document — один документ коллекции: идентификатор внутри коллекции
// и развёрнутые поля.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Store — минимальный контракт документного хранилища.
// Set с merge=true дополняет существующий документ, merge=false —
// полностью перезаписывает. Update возвращает ErrNotFound для
// отсутствующего документа, Set — создаёт его.
type Store interface {
	Get(ctx context.Context, path string) (*Document, error)
	Set(ctx context.Context, path string, fields map[string]interface{}, merge bool) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, collection string) ([]*Document, error)
}

// Сентинельные значения полей. Хранилище разворачивает их при записи:
// Increment — атомарное сложение, ArrayUnion — дозапись в массив,
// ServerTimestamp — серверное время записи.

type incrementValue struct{ Delta float64 }

type arrayUnionValue struct{ Elems []interface{} }

type serverTimestampValue struct{}

func Increment(delta float64) interface{} {
	return incrementValue{Delta: delta}
}

func ArrayUnion(elems ...interface{}) interface{} {
	return arrayUnionValue{Elems: elems}
}

func ServerTimestamp() interface{} {
	return serverTimestampValue{}
}

// CollectionOf возвращает коллекцию и идентификатор документа для пути.
// Путь обязан содержать чётное число сегментов (минимум два).
func CollectionOf(path string) (collection, id string, err error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", "", fmt.Errorf("invalid document path %q", path)
	}
	for _, s := range segments {
		if s == "" {
			return "", "", fmt.Errorf("invalid document path %q", path)
		}
	}
	return strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1], nil
}

// applyFields накладывает fields на dst, разворачивая сентинели.
// dst ожидается в JSON-представлении (числа как float64).
func applyFields(dst map[string]interface{}, fields map[string]interface{}, now time.Time) {
	for key, value := range fields {
		switch v := value.(type) {
		case incrementValue:
			dst[key] = toFloat64(dst[key]) + v.Delta
		case arrayUnionValue:
			existing, _ := dst[key].([]interface{})
			dst[key] = append(existing, v.Elems...)
		case serverTimestampValue:
			dst[key] = now.UTC().Format(time.RFC3339Nano)
		default:
			dst[key] = value
		}
	}
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
