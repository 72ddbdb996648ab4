package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	propertieserrors "smarthost/internal/properties/errors"
	"smarthost/pkg/config"
	mongotx "smarthost/pkg/db/mongo"
	"smarthost/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Criteria is the part of a search that runs in Mongo. Zero values mean
// "no constraint".
type Criteria struct {
	Location string
	Guests   int
	MinPrice float64
	MaxPrice float64
	Limit    int
}

type PropertyRepository interface {
	FindActive(ctx context.Context, limit int, offset int64) ([]*model.Property, error)
	CountActive(ctx context.Context) (int64, error)
	FindFeatured(ctx context.Context, limit int) ([]*model.Property, error)
	FindByID(ctx context.Context, id string) (*model.Property, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Property, error)
	FindDetail(ctx context.Context, id string) (*model.Property, error)
	Search(ctx context.Context, criteria Criteria) ([]*model.Property, error)
}

type mongoPropertyRepository struct {
	cfg        *config.Config
	properties *mongo.Collection
	amenities  *mongo.Collection
	users      *mongo.Collection
	reviews    *mongo.Collection
}

func NewMongoPropertyRepository(cfg *config.Config, client *mongo.Client) PropertyRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		properties: db.Collection(mongotx.CollectionProperties),
		amenities:  db.Collection(mongotx.CollectionAmenities),
		users:      db.Collection(mongotx.CollectionUsers),
		reviews:    db.Collection(mongotx.CollectionReviews),
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

func (r *mongoPropertyRepository) FindActive(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.findWithAmenities(ctx, bson.M{"is_active": true}, opts)
}

func (r *mongoPropertyRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.properties.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func (r *mongoPropertyRepository) FindFeatured(ctx context.Context, limit int) ([]*model.Property, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetLimit(int64(limit))

	return r.findWithAmenities(ctx, bson.M{"is_active": true, "is_featured": true}, opts)
}

// FindByID returns the bare property document, active or not.
func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	var property model.Property
	err = r.properties.FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, propertieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &property, nil
}

func (r *mongoPropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Property, error) {
	objectIDs := toObjectIDs(ids)
	if len(objectIDs) == 0 {
		return []*model.Property{}, nil
	}
	return r.findWithAmenities(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find())
}

// FindDetail loads an active property with its amenities, owner and
// reviews (newest first, each with its author).
func (r *mongoPropertyRepository) FindDetail(ctx context.Context, id string) (*model.Property, error) {
	property, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, propertieserrors.ErrNotFound
	}

	if err := r.attachAmenities(ctx, []*model.Property{property}); err != nil {
		return nil, err
	}

	owners, err := r.userSummaries(ctx, []string{property.OwnerID})
	if err != nil {
		return nil, err
	}
	property.Owner = owners[property.OwnerID]

	reviews, err := r.propertyReviews(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	property.Reviews = reviews

	return property, nil
}

// Search matches location against title, city, country and address, and
// filters on capacity and nightly price.
func (r *mongoPropertyRepository) Search(ctx context.Context, criteria Criteria) ([]*model.Property, error) {
	filter := bson.M{"is_active": true}

	if location := strings.TrimSpace(criteria.Location); location != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(location), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"city": pattern},
			bson.M{"country": pattern},
			bson.M{"address": pattern},
		}
	}
	if criteria.Guests > 0 {
		filter["max_guests"] = bson.M{"$gte": criteria.Guests}
	}

	price := bson.M{}
	if criteria.MinPrice > 0 {
		price["$gte"] = criteria.MinPrice
	}
	if criteria.MaxPrice > 0 {
		price["$lte"] = criteria.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	if criteria.Limit > 0 {
		opts.SetLimit(int64(criteria.Limit))
	}

	return r.findWithAmenities(ctx, filter, opts)
}

// --- Helpers ---

func (r *mongoPropertyRepository) findWithAmenities(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Property, error) {
	findCtx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.properties.Find(findCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	defer cursor.Close(findCtx)

	properties := []*model.Property{}
	if err = cursor.All(findCtx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	if err := r.attachAmenities(ctx, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// attachAmenities resolves AmenityIDs for every property with one query,
// keeping each property's amenity order.
func (r *mongoPropertyRepository) attachAmenities(ctx context.Context, properties []*model.Property) error {
	var ids []string
	for _, p := range properties {
		ids = append(ids, p.AmenityIDs...)
	}
	objectIDs := toObjectIDs(ids)
	if len(objectIDs) == 0 {
		return nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.amenities.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return fmt.Errorf("failed to find amenities: %w", err)
	}
	defer cursor.Close(ctx)

	var amenities []model.Amenity
	if err := cursor.All(ctx, &amenities); err != nil {
		return fmt.Errorf("failed to decode amenities: %w", err)
	}

	byID := make(map[string]model.Amenity, len(amenities))
	for _, a := range amenities {
		byID[a.ID] = a
	}
	for _, p := range properties {
		p.Amenities = make([]model.Amenity, 0, len(p.AmenityIDs))
		for _, id := range p.AmenityIDs {
			if a, ok := byID[id]; ok {
				p.Amenities = append(p.Amenities, a)
			}
		}
	}
	return nil
}

func (r *mongoPropertyRepository) userSummaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error) {
	out := make(map[string]*model.UserSummary, len(ids))
	objectIDs := toObjectIDs(ids)
	if len(objectIDs) == 0 {
		return out, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*model.UserSummary
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *mongoPropertyRepository) propertyReviews(ctx context.Context, propertyID string) ([]model.Review, error) {
	findCtx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.reviews.Find(findCtx, bson.M{"property_id": propertyID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(findCtx)

	reviews := []model.Review{}
	if err := cursor.All(findCtx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	authorIDs := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		authorIDs = append(authorIDs, rv.UserID)
	}
	authors, err := r.userSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].Author = authors[reviews[i].UserID]
	}
	return reviews, nil
}

// toObjectIDs drops duplicates and ids that are not valid hex.
func toObjectIDs(ids []string) []primitive.ObjectID {
	seen := make(map[string]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
