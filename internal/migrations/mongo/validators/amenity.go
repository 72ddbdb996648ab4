package validators

import "go.mongodb.org/mongo-driver/bson"

var AmenityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"name", "category"},

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},
			"icon": bson.M{"bsonType": "string"},
			"category": bson.M{
				"enum": []string{"ESSENTIAL", "FEATURE", "LOCATION", "SAFETY", "OTHER"},
			},
		},
	},
}
