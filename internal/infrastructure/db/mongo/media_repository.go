package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/czarstudio/studio-api/internal/core/domain"
	"github.com/czarstudio/studio-api/internal/core/ports"
)

const (
	collectionPhotos = "photos"
	collectionVideos = "videos"
)

var byDateDesc = options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})

func mediaFilter(f ports.MediaFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.Published != nil {
		filter["published"] = *f.Published
	}
	return filter
}

// mediaSet builds the $set document of a partial update. urlField names the
// collection's primary URL field.
func mediaSet(upd ports.MediaUpdate, urlField string, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("title", upd.Title)
	put("description", upd.Description)
	put("category", upd.Category)
	put(urlField, upd.URL)
	put("thumbnail_url", upd.ThumbnailURL)
	put("duration", upd.Duration)
	put("location", upd.Location)
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Featured != nil {
		set["featured"] = *upd.Featured
	}
	if upd.Published != nil {
		set["published"] = *upd.Published
	}
	return set
}

func listMedia[T any](ctx context.Context, col *mongo.Collection, f ports.MediaFilter) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, mediaFilter(f), byDateDesc)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func updateMedia[T any](ctx context.Context, col *mongo.Collection, id string, set bson.M, notFound error) (*T, error) {
	oid, err := objectID(id, notFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec T
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &rec, nil
}

func countMedia(ctx context.Context, col *mongo.Collection) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, err
	}
	published, err := col.CountDocuments(ctx, bson.M{"published": true})
	if err != nil {
		return 0, 0, err
	}
	return total, published, nil
}

func mediaIndexes(ctx context.Context, col *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
	})
	return err
}

// ── Photos ────────────────────────────────────────────────────────────────────

type PhotoRepository struct {
	col *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{col: db.Collection(collectionPhotos)}
}

func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = ""
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	p.ID = insertedHex(res)
	return nil
}

// List returns photos matching f, most recent shoot first.
func (r *PhotoRepository) List(ctx context.Context, f ports.MediaFilter) ([]*domain.Photo, error) {
	return listMedia[domain.Photo](ctx, r.col, f)
}

func (r *PhotoRepository) Update(ctx context.Context, id string, upd ports.MediaUpdate) (*domain.Photo, error) {
	upd.ThumbnailURL, upd.Duration = nil, nil
	return updateMedia[domain.Photo](ctx, r.col, id, mediaSet(upd, "image_url", time.Now().UTC()), domain.ErrPhotoNotFound)
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrPhotoNotFound)
}

func (r *PhotoRepository) Count(ctx context.Context) (int64, int64, error) {
	return countMedia(ctx, r.col)
}

func (r *PhotoRepository) EnsureIndexes(ctx context.Context) error {
	return mediaIndexes(ctx, r.col)
}

// ── Videos ────────────────────────────────────────────────────────────────────

type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{col: db.Collection(collectionVideos)}
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	v.ID = ""
	res, err := r.col.InsertOne(ctx, v)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	v.ID = insertedHex(res)
	return nil
}

func (r *VideoRepository) List(ctx context.Context, f ports.MediaFilter) ([]*domain.Video, error) {
	return listMedia[domain.Video](ctx, r.col, f)
}

func (r *VideoRepository) Update(ctx context.Context, id string, upd ports.MediaUpdate) (*domain.Video, error) {
	return updateMedia[domain.Video](ctx, r.col, id, mediaSet(upd, "video_url", time.Now().UTC()), domain.ErrVideoNotFound)
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrVideoNotFound)
}

func (r *VideoRepository) Count(ctx context.Context) (int64, int64, error) {
	return countMedia(ctx, r.col)
}

func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	return mediaIndexes(ctx, r.col)
}
