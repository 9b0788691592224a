package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore maps each portal collection onto a MongoDB collection, using the
// document ID as _id.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore constructs a MongoStore.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// Get decodes the document into dest.
func (s *MongoStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	data, err := fromBSON(raw)
	if err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns every document of collection ordered by ID.
func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := []Document{}
	for cursor.Next(ctx) {
		id, ok := cursor.Current.Lookup("_id").StringValueOK()
		if !ok {
			continue
		}
		data, err := fromBSON(cursor.Current)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, Document{ID: id, Data: data})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// Put upserts the document.
func (s *MongoStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	body, err := toBSON(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	body = append(bson.D{{Key: "_id", Value: id}}, body...)
	_, err = s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, body, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update sets top-level fields on an existing document.
func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	set := bson.M{}
	for key, value := range fields {
		set[key] = value
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// ArrayUnion appends values with $addToSet so existing entries are never duplicated.
func (s *MongoStore) ArrayUnion(ctx context.Context, collection, id, field string, values ...string) error {
	update := bson.M{"$addToSet": bson.M{field: bson.M{"$each": values}}}
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("array union %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// toBSON converts any JSON-encodable value into an ordered BSON document.
func toBSON(doc interface{}) (bson.D, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var body bson.D
	if err := bson.UnmarshalExtJSON(data, false, &body); err != nil {
		return nil, err
	}
	filtered := body[:0]
	for _, elem := range body {
		if elem.Key == "_id" {
			continue
		}
		filtered = append(filtered, elem)
	}
	return filtered, nil
}

// fromBSON renders a stored document as relaxed extended JSON, which for the portal's
// strings, numbers, booleans, arrays and objects is plain JSON.
func fromBSON(raw bson.Raw) (json.RawMessage, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
