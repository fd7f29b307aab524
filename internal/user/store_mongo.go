// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
)

// userDocument is the BSON shape of a user.
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	IsRememberMe bool               `bson:"isRememberMe"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (doc *userDocument) toUser() *User {
	return &User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		Password:     doc.Password,
		IsRememberMe: doc.IsRememberMe,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// MongoRepository stores users in the "users" collection.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository binds the repository to database.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: database.Collection(constants.CollectionUsers)}
}

func (repository *MongoRepository) Create(context context.Context, u *User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Email:        u.Email,
		Password:     u.Password,
		IsRememberMe: u.IsRememberMe,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repository.collection.InsertOne(context, doc); err != nil {
		return dberr.Wrap(err, "create_user")
	}

	u.ID = doc.ID.Hex()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (repository *MongoRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, bson.M{"email": email}, "find_user_by_email")
}

func (repository *MongoRepository) UpdateRememberMe(context context.Context, id string, isRememberMe bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return dberr.ErrNotFound
	}

	result, err := repository.collection.UpdateOne(context,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isRememberMe": isRememberMe, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return dberr.Wrap(err, "update_user_remember_me")
	}
	if result.MatchedCount == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *MongoRepository) UpdatePassword(context context.Context, id, expectedHash, newHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return dberr.ErrNotFound
	}

	result, err := repository.collection.UpdateOne(context,
		bson.M{"_id": oid, "password": expectedHash},
		bson.M{"$set": bson.M{"password": newHash, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if result.MatchedCount == 1 {
		return nil
	}

	// Nothing matched: either the user is gone or the hash moved underneath us.
	count, err := repository.collection.CountDocuments(context, bson.M{"_id": oid})
	if err != nil {
		return dberr.Wrap(err, "count_user")
	}
	if count == 0 {
		return dberr.ErrNotFound
	}
	return ErrStalePassword
}

func (repository *MongoRepository) findOne(context context.Context, filter bson.M, action string) (*User, error) {
	var doc userDocument
	if err := repository.collection.FindOne(context, filter).Decode(&doc); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return doc.toUser(), nil
}
