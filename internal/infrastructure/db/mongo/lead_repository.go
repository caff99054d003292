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
)

const (
	collectionBookings = "bookings"
	collectionContacts = "contacts"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

// Bookings and contacts share the same document shape around a status field,
// so the collection operations are written once over the record type.

func findByID[T any](ctx context.Context, col *mongo.Collection, id string, notFound error) (*T, error) {
	oid, err := objectID(id, notFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec T
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, err
	}
	return &rec, nil
}

func listByStatus[T any](ctx context.Context, col *mongo.Collection, status string) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := col.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func setStatus[T any](ctx context.Context, col *mongo.Collection, id, status string, notFound error) (*T, error) {
	oid, err := objectID(id, notFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec T
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
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

func deleteByID(ctx context.Context, col *mongo.Collection, id string, notFound error) error {
	oid, err := objectID(id, notFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

// countByStatus groups the collection by status in a single aggregation.
func countByStatus(ctx context.Context, col *mongo.Collection) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Status string `bson:"_id"`
		N      int64  `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

func statusIndexes(ctx context.Context, col *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

// ── Bookings ──────────────────────────────────────────────────────────────────

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

// Create inserts the booking and sets its generated id.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b.ID = ""
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID = insertedHex(res)
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	return findByID[domain.Booking](ctx, r.col, id, domain.ErrBookingNotFound)
}

func (r *BookingRepository) List(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	return listByStatus[domain.Booking](ctx, r.col, string(status))
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	return setStatus[domain.Booking](ctx, r.col, id, string(status), domain.ErrBookingNotFound)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrBookingNotFound)
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	raw, err := countByStatus(ctx, r.col)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	out := make(map[domain.BookingStatus]int64, len(raw))
	for k, v := range raw {
		out[domain.BookingStatus(k)] = v
	}
	return out, nil
}

func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	return statusIndexes(ctx, r.col)
}

// ── Contacts ──────────────────────────────────────────────────────────────────

type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(collectionContacts)}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = ""
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID = insertedHex(res)
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	return findByID[domain.Contact](ctx, r.col, id, domain.ErrContactNotFound)
}

func (r *ContactRepository) List(ctx context.Context, status domain.ContactStatus) ([]*domain.Contact, error) {
	return listByStatus[domain.Contact](ctx, r.col, string(status))
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	return setStatus[domain.Contact](ctx, r.col, id, string(status), domain.ErrContactNotFound)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrContactNotFound)
}

func (r *ContactRepository) CountByStatus(ctx context.Context) (map[domain.ContactStatus]int64, error) {
	raw, err := countByStatus(ctx, r.col)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	out := make(map[domain.ContactStatus]int64, len(raw))
	for k, v := range raw {
		out[domain.ContactStatus(k)] = v
	}
	return out, nil
}

func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	return statusIndexes(ctx, r.col)
}
