package validators

import "go.mongodb.org/mongo-driver/bson"

// Hex object ids stored as strings for cross-collection references.
var hexID = bson.M{
	"bsonType":  "string",
	"minLength": 24,
	"maxLength": 24,
}

var integer = bson.A{"int", "long"}
