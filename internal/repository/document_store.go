package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDocumentNotFound is returned when a collection holds no document with the requested ID.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a raw JSON document together with its ID.
type Document struct {
	ID   string
	Data json.RawMessage
}

// DocumentStore is the contract every backing store satisfies. Documents are JSON
// objects addressed by collection and ID.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string, dest interface{}) error
	List(ctx context.Context, collection string) ([]Document, error)
	Put(ctx context.Context, collection, id string, doc interface{}) error
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	ArrayUnion(ctx context.Context, collection, id, field string, values ...string) error
}

// mergeFields overlays fields onto the top level of a JSON object.
func mergeFields(raw json.RawMessage, fields map[string]interface{}) (json.RawMessage, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	for key, value := range fields {
		doc[key] = value
	}
	return json.Marshal(doc)
}

// unionField appends values to the array at field, skipping values already present.
// A missing or null field is treated as an empty array.
func unionField(raw json.RawMessage, field string, values []string) (json.RawMessage, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	var existing []interface{}
	switch current := doc[field].(type) {
	case nil:
	case []interface{}:
		existing = current
	default:
		return nil, fmt.Errorf("field %q is not an array", field)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		if s, ok := item.(string); ok {
			seen[s] = struct{}{}
		}
	}
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		existing = append(existing, value)
	}
	if existing == nil {
		existing = []interface{}{}
	}
	doc[field] = existing
	return json.Marshal(doc)
}

func decodeObject(raw json.RawMessage) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}
