package mongo

import (
	"context"
	"fmt"

	"smarthost/internal/migrations/mongo/validators"
	mongotx "smarthost/pkg/db/mongo"
	"smarthost/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	AmenitiesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	PropertiesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "is_featured", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "property_id", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "end_date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "start_date", Value: -1},
		}},
	}

	// Abandoned locks are reaped as soon as expires_at passes.
	BookingLocksIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}

	ReviewsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	PaymentsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "payment_intent_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}

	ConversationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "participant_ids", Value: 1}, {Key: "updated_at", Value: -1}}},
	}

	MessagesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	NotificationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}, {Key: "created_at", Value: -1}}},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the marketplace owns, in creation order.
func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: mongotx.CollectionUsers, Indexes: UsersIndexes, Validator: validators.UserValidator},
		{Name: mongotx.CollectionAmenities, Indexes: AmenitiesIndexes, Validator: validators.AmenityValidator},
		{Name: mongotx.CollectionProperties, Indexes: PropertiesIndexes, Validator: validators.PropertyValidator},
		{Name: mongotx.CollectionBookings, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: mongotx.CollectionBookingLocks, Indexes: BookingLocksIndexes, Validator: validators.BookingLockValidator},
		{Name: mongotx.CollectionReviews, Indexes: ReviewsIndexes, Validator: validators.ReviewValidator},
		{Name: mongotx.CollectionPayments, Indexes: PaymentsIndexes, Validator: validators.PaymentValidator},
		{Name: mongotx.CollectionConversations, Indexes: ConversationsIndexes, Validator: validators.ConversationValidator},
		{Name: mongotx.CollectionMessages, Indexes: MessagesIndexes, Validator: validators.MessageValidator},
		{Name: mongotx.CollectionNotifications, Indexes: NotificationsIndexes, Validator: validators.NotificationValidator},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
