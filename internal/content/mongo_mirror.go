package content

import (
	"context"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoMirror mirrors each content collection into a MongoDB collection
// of the same name. The driver's _id is kept internal: list order follows
// _id and it is stripped from every returned item.
type MongoMirror struct {
	db *mongo.Database
}

// NewMongoMirror returns a mirror writing to db.
func NewMongoMirror(db *mongo.Database) *MongoMirror {
	return &MongoMirror{db: db}
}

// Insert appends it to the collection.
func (m *MongoMirror) Insert(ctx context.Context, collection string, it Item) error {
	doc, err := toDocument(it)
	if err != nil {
		return err
	}
	_, err = m.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

// UpdateByID replaces the document whose id field equals id, inserting it
// when no such document exists.
func (m *MongoMirror) UpdateByID(ctx context.Context, collection, id string, it Item) error {
	doc, err := toDocument(it)
	if err != nil {
		return err
	}
	_, err = m.db.Collection(collection).ReplaceOne(ctx,
		bson.D{{Key: "id", Value: id}}, doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// DeleteByID removes the document whose id field equals id. A missing
// document is not an error.
func (m *MongoMirror) DeleteByID(ctx context.Context, collection, id string) error {
	_, err := m.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	return err
}

// ReplaceAll clears the collection and inserts items in order.
func (m *MongoMirror) ReplaceAll(ctx context.Context, collection string, items []Item) error {
	docs := make([]any, 0, len(items))
	for _, it := range items {
		doc, err := toDocument(it)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	col := m.db.Collection(collection)
	if _, err := col.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// PutSingleton stores it as the only document of the collection. A nil
// item leaves the collection empty.
func (m *MongoMirror) PutSingleton(ctx context.Context, collection string, it Item) error {
	col := m.db.Collection(collection)
	if _, err := col.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if it == nil {
		return nil
	}
	doc, err := toDocument(it)
	if err != nil {
		return err
	}
	_, err = col.InsertOne(ctx, doc)
	return err
}

// List returns the collection in insertion order.
func (m *MongoMirror) List(ctx context.Context, collection string) ([]Item, error) {
	cur, err := m.db.Collection(collection).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []Item{}
	for cur.Next(ctx) {
		it, err := fromDocument(cur.Current)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, cur.Err()
}

// GetSingleton returns the single document, or nil when there is none.
func (m *MongoMirror) GetSingleton(ctx context.Context, collection string) (Item, error) {
	res := m.db.Collection(collection).FindOne(ctx, bson.D{})
	raw, err := res.Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(raw)
}

// toDocument goes through JSON so the mirror stores exactly what the
// file store holds.
func toDocument(it Item) (bson.D, error) {
	data, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, err
	}
	return stripID(doc), nil
}

// fromDocument is the inverse of toDocument.
func fromDocument(raw bson.Raw) (Item, error) {
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc = stripID(doc)

	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, err
	}
	var it Item
	if err := decodeJSON(data, &it); err != nil {
		return nil, err
	}
	return it, nil
}

func stripID(doc bson.D) bson.D {
	out := doc[:0]
	for _, e := range doc {
		if e.Key != ReservedKey {
			out = append(out, e)
		}
	}
	return out
}
