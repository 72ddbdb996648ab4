package validators

import "go.mongodb.org/mongo-driver/bson"

var ConversationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"participant_ids", "created_at"},

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"participant_ids": bson.M{
				"bsonType": "array",
				"minItems": 2,
				"items":    hexID,
			},
			"property_id": hexID,
			"created_at":  bson.M{"bsonType": "date"},
			"updated_at":  bson.M{"bsonType": "date"},
		},
	},
}

var MessageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"conversation_id", "sender_id", "content", "created_at"},

		"properties": bson.M{
			"_id":             bson.M{"bsonType": "objectId"},
			"conversation_id": hexID,
			"sender_id":       hexID,
			"content": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 5000,
			},
			"read_at":    bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"user_id", "type", "title", "read", "created_at"},

		"properties": bson.M{
			"_id":     bson.M{"bsonType": "objectId"},
			"user_id": hexID,
			"type":    bson.M{"bsonType": "string", "minLength": 1},
			"title": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},
			"body":       bson.M{"bsonType": "string"},
			"read":       bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
