package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mopts "go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoDoc struct {
	ID        string    `bson:"_id"`
	Type      string    `bson:"type"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per key in a collection, with the key hash
// as _id.
type MongoStore struct {
	coll  *mongo.Collection
	codec codec
}

// NewMongoStore creates a MongoStore over coll.
func NewMongoStore(coll *mongo.Collection, opts ...Option) *MongoStore {
	o := newOptions(opts)
	return &MongoStore{coll: coll, codec: codec{cipher: o.cipher, format: o.format}}
}

func (s *MongoStore) Save(ctx context.Context, key Key, v any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := s.codec.encode(key, v)
	if err != nil {
		return err
	}
	doc := mongoDoc{ID: key.Hash(), Type: key.Type, Data: data, UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, mopts.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, key Key, dst any) error {
	if err := key.validate(); err != nil {
		return err
	}
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key.Hash()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return s.codec.decode(key, doc.Data, dst)
}

func (s *MongoStore) Delete(ctx context.Context, key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key.Hash()}}); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
