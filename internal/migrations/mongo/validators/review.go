package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"rating", "user_id", "property_id", "booking_id", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"rating": bson.M{
				"bsonType": integer,
				"minimum":  1,
				"maximum":  5,
			},
			"comment": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},
			"user_id":     hexID,
			"property_id": hexID,
			"booking_id":  hexID,
			"created_at":  bson.M{"bsonType": "date"},
		},
	},
}
