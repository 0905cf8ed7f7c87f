package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

// MongoStore keeps marketing content sections and gallery metadata.
type MongoStore struct {
	content *mongo.Collection
	gallery *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		content: db.Collection("content"),
		gallery: db.Collection("gallery"),
	}
}

type contentDoc struct {
	Section   string    `bson:"_id"`
	Data      bson.Raw  `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// GetContent decodes the stored section into out. It reports false when
// the section has never been saved.
func (s *MongoStore) GetContent(ctx context.Context, section string, out any) (bool, error) {
	var doc contentDoc
	err := s.content.FindOne(ctx, bson.M{"_id": section}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo get content %s: %w", section, err)
	}
	if err := bson.Unmarshal(doc.Data, out); err != nil {
		return false, fmt.Errorf("mongo decode content %s: %w", section, err)
	}
	return true, nil
}

// PutContent replaces the section, creating it on first save.
func (s *MongoStore) PutContent(ctx context.Context, section string, v any) error {
	_, err := s.content.UpdateOne(ctx,
		bson.M{"_id": section},
		bson.M{"$set": bson.M{"data": v, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo put content %s: %w", section, err)
	}
	return nil
}

func (s *MongoStore) InsertImage(ctx context.Context, img *models.GalleryImage) error {
	if _, err := s.gallery.InsertOne(ctx, img); err != nil {
		return fmt.Errorf("mongo insert image: %w", err)
	}
	return nil
}

// ListImages returns gallery images newest first.
func (s *MongoStore) ListImages(ctx context.Context) ([]models.GalleryImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.gallery.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list images: %w", err)
	}
	defer cur.Close(ctx)

	var imgs []models.GalleryImage
	if err := cur.All(ctx, &imgs); err != nil {
		return nil, fmt.Errorf("mongo decode images: %w", err)
	}
	return imgs, nil
}

func (s *MongoStore) GetImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := s.gallery.FindOne(ctx, bson.M{"_id": id}).Decode(&img)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get image %s: %w", id, err)
	}
	return &img, nil
}

func (s *MongoStore) DeleteImage(ctx context.Context, id string) (bool, error) {
	res, err := s.gallery.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("mongo delete image %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
