package recycle

import (
	"context"

	"aterbruk-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item models.Recycle) error
	Update(ctx context.Context, id string, set bson.M) (models.Recycle, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (models.Recycle, error)
	ListPublic(ctx context.Context) ([]models.Recycle, error)
	ListByOrganisations(ctx context.Context, organisations []string) ([]models.Recycle, error)
	ListAll(ctx context.Context) ([]models.Recycle, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item models.Recycle) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (models.Recycle, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated models.Recycle
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return models.Recycle{}, err
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

func (r *MongoRepository) GetByID(ctx context.Context, id string) (models.Recycle, error) {
	var item models.Recycle
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return models.Recycle{}, err
	}
	return item, nil
}

func (r *MongoRepository) ListPublic(ctx context.Context) ([]models.Recycle, error) {
	return r.list(ctx, bson.M{
		"isPublic":         true,
		"mapItem.isActive": true,
	})
}

func (r *MongoRepository) ListByOrganisations(ctx context.Context, organisations []string) ([]models.Recycle, error) {
	if len(organisations) == 0 {
		return []models.Recycle{}, nil
	}
	return r.list(ctx, bson.M{
		"mapItem.isActive":     true,
		"mapItem.organisation": bson.M{"$in": organisations},
	})
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]models.Recycle, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M) ([]models.Recycle, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "mapItem.organisation", Value: 1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Recycle, 0)
	for cursor.Next(ctx) {
		var item models.Recycle
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
