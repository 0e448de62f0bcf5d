package stories

import (
	"context"

	"aterbruk-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item models.Story) error
	Update(ctx context.Context, id string, set bson.M) (models.Story, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (models.Story, error)
	ListActive(ctx context.Context) ([]models.Story, error)
	ListAll(ctx context.Context) ([]models.Story, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item models.Story) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (models.Story, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated models.Story
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.Story{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (models.Story, error) {
	var item models.Story
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return models.Story{}, err
	}
	return item, nil
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.Story, error) {
	return r.list(ctx, bson.M{"mapItem.isActive": true})
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]models.Story, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M) ([]models.Story, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "mapItem.organisation", Value: 1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Story, 0)
	for cursor.Next(ctx) {
		var item models.Story
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
