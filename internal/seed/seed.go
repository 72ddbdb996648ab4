// Package seed resets a database to the fixed demo fixtures: three users,
// ten amenities and eight featured listings owned by the host user.
package seed

import (
	"context"
	"fmt"
	"time"

	mongotx "smarthost/pkg/db/mongo"
	"smarthost/pkg/logger"
	"smarthost/pkg/model"
	"smarthost/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// wipeOrder deletes dependents before the documents they reference.
var wipeOrder = []string{
	mongotx.CollectionNotifications,
	mongotx.CollectionMessages,
	mongotx.CollectionConversations,
	mongotx.CollectionPayments,
	mongotx.CollectionReviews,
	mongotx.CollectionBookings,
	mongotx.CollectionProperties,
	mongotx.CollectionAmenities,
	mongotx.CollectionUsers,
}

type Summary struct {
	Users      int
	Amenities  int
	Properties int
}

type Seeder struct {
	db  *mongo.Database
	log *logger.Logger
	now func() time.Time
}

func NewSeeder(db *mongo.Database, log *logger.Logger) *Seeder {
	return &Seeder{
		db:  db,
		log: log,
		now: time.Now,
	}
}

// Run wipes the marketplace collections and inserts the fixtures. It is not
// transactional: a failure part way leaves a partial seed that the next run
// replaces.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	for _, name := range wipeOrder {
		res, err := s.db.Collection(name).DeleteMany(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", name, err)
		}
		s.log.Debug("Cleared collection", "collection", name, "deleted", res.DeletedCount)
	}
	s.log.Info("Cleaned up existing data")

	now := s.now().UTC().Truncate(time.Millisecond)

	userIDs, err := s.insert(ctx, mongotx.CollectionUsers, buildUsers(now))
	if err != nil {
		return nil, err
	}
	s.log.Info("Created users", "count", len(userIDs))

	amenityIDs, err := s.insert(ctx, mongotx.CollectionAmenities, buildAmenities())
	if err != nil {
		return nil, err
	}
	s.log.Info("Created amenities", "count", len(amenityIDs))

	properties := buildProperties(userIDs[hostFixture], amenityIDs, now, uuid.NewString)
	propertyIDs, err := s.insert(ctx, mongotx.CollectionProperties, properties)
	if err != nil {
		return nil, err
	}
	s.log.Info("Created properties", "count", len(propertyIDs))

	return &Summary{
		Users:      len(userIDs),
		Amenities:  len(amenityIDs),
		Properties: len(propertyIDs),
	}, nil
}

func (s *Seeder) insert(ctx context.Context, collection string, docs []any) ([]string, error) {
	res, err := s.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", collection, err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		oid, ok := id.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("unexpected %s id type %T", collection, id)
		}
		ids = append(ids, oid.Hex())
	}
	return ids, nil
}

func buildUsers(now time.Time) []any {
	docs := make([]any, 0, len(userFixtures))
	for _, u := range userFixtures {
		u.Email = sanitizer.SanitizeEmail(u.Email)
		u.Name = sanitizer.NormalizeName(u.Name)
		u.CreatedAt = now
		u.UpdatedAt = now
		docs = append(docs, u)
	}
	return docs
}

func buildAmenities() []any {
	docs := make([]any, 0, len(amenityFixtures))
	for _, a := range amenityFixtures {
		a.Name = sanitizer.NormalizeName(a.Name)
		docs = append(docs, a)
	}
	return docs
}

// buildProperties resolves fixture amenity positions to stored ids and
// assigns every listing to ownerID.
func buildProperties(ownerID string, amenityIDs []string, now time.Time, newImageID func() string) []any {
	docs := make([]any, 0, len(propertyFixtures))
	for _, f := range propertyFixtures {
		p := f.Property
		p.OwnerID = ownerID
		p.IsFeatured = true
		p.IsActive = true
		p.CreatedAt = now
		p.UpdatedAt = now

		p.Images = make([]model.PropertyImage, 0, len(f.Images))
		for _, img := range f.Images {
			p.Images = append(p.Images, model.PropertyImage{
				ID:        newImageID(),
				URL:       img.URL,
				Caption:   img.Caption,
				CreatedAt: now,
			})
		}

		p.AmenityIDs = make([]string, 0, len(f.Amenities))
		for _, idx := range f.Amenities {
			p.AmenityIDs = append(p.AmenityIDs, amenityIDs[idx])
		}

		docs = append(docs, p)
	}
	return docs
}
