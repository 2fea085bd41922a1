// Пакет repository отображает доменные записи на документное
// хранилище. Раскладка путей, одна на всех:
//
//	users/{uid}/lessonProgress/{lessonId}
//	users/{uid}/exerciseResults/{exerciseId}
//	users/{uid}/dictionary/{normalizedWord}
//	users/{uid}/skills/{skillId}
//	users/{uid}/stats/overall
package repository

import (
	"encoding/json"

	"github.com/SilverKain/Orthography/internal/docstore"
)

func decodeDocument(doc *docstore.Document, v interface{}) error {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func userPath(uid, collection, docID string) string {
	return "users/" + uid + "/" + collection + "/" + docID
}

func userCollection(uid, collection string) string {
	return "users/" + uid + "/" + collection
}
