package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"amount",
			"currency",
			"status",
			"payment_method",
			"payment_intent_id",
			"booking_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"amount": bson.M{
				"bsonType":         "number",
				"exclusiveMinimum": true,
				"minimum":          0,
			},
			"currency": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 3,
			},
			"status": bson.M{
				"enum": []string{"PENDING", "COMPLETED", "FAILED", "REFUNDED"},
			},
			"payment_method": bson.M{
				"enum": []string{"credit-card", "pix", "paypal"},
			},
			"payment_intent_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"user_id":    hexID,
			"booking_id": hexID,
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
