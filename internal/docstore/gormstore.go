package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow — строка таблицы documents: полный путь уникален,
// коллекция индексирована для List.
type DocumentRow struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Path       string `gorm:"size:512;uniqueIndex;not null"`
	Collection string `gorm:"size:512;index;not null"`
	DocID      string `gorm:"size:255;not null"`
	Data       datatypes.JSON
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DocumentRow) TableName() string {
	return "documents"
}

// GormStore — боевая реализация Store поверх MySQL. Сентинельные
// Increment/ArrayUnion применяются внутри транзакции с блокировкой
// строки, это единственный безопасно-конкурентный путь арифметики.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Get(ctx context.Context, path string) (*Document, error) {
	var row DocumentRow
	err := s.DB.WithContext(ctx).Where("path = ?", path).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rowToDocument(&row)
}

func (s *GormStore) Set(ctx context.Context, path string, fields map[string]interface{}, merge bool) error {
	return s.write(ctx, path, fields, merge, true)
}

func (s *GormStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return s.write(ctx, path, fields, true, false)
}

func (s *GormStore) Delete(ctx context.Context, path string) error {
	return s.DB.WithContext(ctx).Where("path = ?", path).Delete(&DocumentRow{}).Error
}

func (s *GormStore) List(ctx context.Context, collection string) ([]*Document, error) {
	var rows []DocumentRow
	err := s.DB.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(rows))
	for i := range rows {
		doc, err := rowToDocument(&rows[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *GormStore) write(ctx context.Context, path string, fields map[string]interface{}, merge, createMissing bool) error {
	collection, docID, err := CollectionOf(path)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DocumentRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("path = ?", path).
			First(&row).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !createMissing {
				return ErrNotFound
			}
			row = DocumentRow{Path: path, Collection: collection, DocID: docID}
		case err != nil:
			return err
		}

		data := map[string]interface{}{}
		if merge && len(row.Data) > 0 {
			if err := json.Unmarshal(row.Data, &data); err != nil {
				return err
			}
		}
		applyFields(data, fields, time.Now())

		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		row.Data = raw
		return tx.Save(&row).Error
	})
}

func rowToDocument(row *DocumentRow) (*Document, error) {
	data := map[string]interface{}{}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return nil, err
		}
	}
	return &Document{ID: row.DocID, Data: data}, nil
}
