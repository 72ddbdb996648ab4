package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"start_date",
			"end_date",
			"total_price",
			"guest_count",
			"status",
			"user_id",
			"property_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},

			"start_date": bson.M{"bsonType": "date"},
			"end_date":   bson.M{"bsonType": "date"},

			"total_price": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},
			"guest_count": bson.M{
				"bsonType": integer,
				"minimum":  1,
			},
			"status": bson.M{
				"enum": []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"},
			},

			"user_id":     hexID,
			"property_id": hexID,

			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "expires_at"},

		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"owner":      bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
