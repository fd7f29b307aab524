// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
)

// lotDocument is the BSON shape of a lot. Field names follow the public JSON.
type lotDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Image          string             `bson:"image,omitempty"`
	Status         Status             `bson:"status"`
	CurrentPrice   float64            `bson:"currentPrice"`
	EstimatedPrice float64            `bson:"estimatedPrice"`
	LotStartTime   time.Time          `bson:"lotStartTime"`
	LotEndTime     time.Time          `bson:"lotEndTime"`
	UserID         string             `bson:"userId"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func (doc *lotDocument) toLot() *Lot {
	return &Lot{
		ID:             doc.ID.Hex(),
		Title:          doc.Title,
		Image:          doc.Image,
		Status:         doc.Status,
		CurrentPrice:   doc.CurrentPrice,
		EstimatedPrice: doc.EstimatedPrice,
		LotStartTime:   doc.LotStartTime,
		LotEndTime:     doc.LotEndTime,
		UserID:         doc.UserID,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

// MongoRepository stores lots in the "lots" collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository binds the repository to database.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionLots)}
}

func (repository *MongoRepository) Create(context context.Context, l *Lot) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := lotDocument{
		ID:             primitive.NewObjectID(),
		Title:          l.Title,
		Image:          l.Image,
		Status:         l.Status,
		CurrentPrice:   l.CurrentPrice,
		EstimatedPrice: l.EstimatedPrice,
		LotStartTime:   l.LotStartTime,
		LotEndTime:     l.LotEndTime,
		UserID:         l.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := repository.collection.InsertOne(context, doc); err != nil {
		return dberr.Wrap(err, "create_lot")
	}

	l.ID = doc.ID.Hex()
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

func (repository *MongoRepository) FindAll(context context.Context, filter Filter) ([]*Lot, error) {
	query := bson.M{}
	if filter.Own {
		query["userId"] = filter.UserID
	}

	cursor, err := repository.collection.Find(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "find_lots")
	}
	defer cursor.Close(context)

	lots := make([]*Lot, 0)
	for cursor.Next(context) {
		var doc lotDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, dberr.Wrap(err, "decode_lot")
		}
		lots = append(lots, doc.toLot())
	}
	if err := cursor.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_lots")
	}
	return lots, nil
}

func (repository *MongoRepository) FindByID(context context.Context, id string) (*Lot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, dberr.ErrNotFound
	}

	var doc lotDocument
	if err := repository.collection.FindOne(context, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, dberr.Wrap(err, "find_lot")
	}
	return doc.toLot(), nil
}

func (repository *MongoRepository) Update(context context.Context, id string, patch Patch, cond Condition) (*Lot, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, dberr.ErrNotFound
	}

	set := patchDocument(patch)
	set["updatedAt"] = time.Now().UTC().Truncate(time.Millisecond)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc lotDocument
	err = repository.collection.FindOneAndUpdate(context, conditionFilter(oid, cond), bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, dberr.Wrap(err, "update_lot")
	}
	return doc.toLot(), nil
}

func (repository *MongoRepository) Delete(context context.Context, id string, cond Condition) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return dberr.ErrNotFound
	}

	result, err := repository.collection.DeleteOne(context, conditionFilter(oid, cond))
	if err != nil {
		return dberr.Wrap(err, "delete_lot")
	}
	if result.DeletedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func conditionFilter(oid primitive.ObjectID, cond Condition) bson.M {
	filter := bson.M{"_id": oid}
	if cond.OwnerID != "" {
		filter["userId"] = cond.OwnerID
	}
	if len(cond.StatusIn) > 0 {
		filter["status"] = bson.M{"$in": cond.StatusIn}
	}
	if cond.StartNotAfter != nil {
		filter["lotStartTime"] = bson.M{"$lte": *cond.StartNotAfter}
	}
	if cond.EndNotBefore != nil {
		filter["lotEndTime"] = bson.M{"$gte": *cond.EndNotBefore}
	}
	return filter
}

func patchDocument(patch Patch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.CurrentPrice != nil {
		set["currentPrice"] = *patch.CurrentPrice
	}
	if patch.EstimatedPrice != nil {
		set["estimatedPrice"] = *patch.EstimatedPrice
	}
	if patch.LotStartTime != nil {
		set["lotStartTime"] = *patch.LotStartTime
	}
	if patch.LotEndTime != nil {
		set["lotEndTime"] = *patch.LotEndTime
	}
	return set
}
