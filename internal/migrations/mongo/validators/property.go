package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"price",
			"address",
			"city",
			"country",
			"max_guests",
			"property_type",
			"owner_id",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},
			"description": bson.M{"bsonType": "string"},
			"price": bson.M{
				"bsonType":         "number",
				"exclusiveMinimum": true,
				"minimum":          0,
			},
			"address": bson.M{"bsonType": "string"},
			"city":    bson.M{"bsonType": "string"},
			"country": bson.M{"bsonType": "string"},

			"bedrooms":   bson.M{"bsonType": integer, "minimum": 0},
			"bathrooms":  bson.M{"bsonType": integer, "minimum": 0},
			"max_guests": bson.M{"bsonType": integer, "minimum": 1},

			"property_type": bson.M{
				"enum": []string{"APARTMENT", "HOUSE", "VILLA", "CABIN", "OTHER"},
			},
			"owner_id":    hexID,
			"is_featured": bson.M{"bsonType": "bool"},
			"is_active":   bson.M{"bsonType": "bool"},

			"images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "url"},
					"properties": bson.M{
						"id":      bson.M{"bsonType": "string"},
						"url":     bson.M{"bsonType": "string", "pattern": `^https?://`},
						"caption": bson.M{"bsonType": "string"},
					},
				},
			},
			"amenity_ids": bson.M{
				"bsonType":    "array",
				"items":       hexID,
				"uniqueItems": true,
			},

			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
