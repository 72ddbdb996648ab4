package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	paymentserrors "smarthost/internal/payments/errors"
	"smarthost/pkg/config"
	mongotx "smarthost/pkg/db/mongo"
	"smarthost/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByIntentID(ctx context.Context, intentID string) (*model.Payment, error)
}

type mongoPaymentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPaymentRepository(cfg *config.Config, client *mongo.Client) PaymentRepository {
	return &mongoPaymentRepository{
		cfg:        cfg,
		collection: client.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionPayments),
	}
}

// Create relies on the unique payment_intent_id index; a replayed
// transaction yields ErrDuplicatePayment.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	payment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", paymentserrors.ErrDuplicatePayment, payment.PaymentIntentID)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPaymentRepository) FindByIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var payment model.Payment
	err := r.collection.FindOne(ctx, bson.M{"payment_intent_id": intentID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, paymentserrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &payment, nil
}
