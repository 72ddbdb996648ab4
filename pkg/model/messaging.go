package model

import "time"

type Conversation struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	ParticipantIDs []string  `json:"participantIds" bson:"participant_ids"`
	PropertyID     string    `json:"propertyId,omitempty" bson:"property_id,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updated_at"`
}

type Message struct {
	ID             string     `json:"id,omitempty" bson:"_id,omitempty"`
	ConversationID string     `json:"conversationId" bson:"conversation_id"`
	SenderID       string     `json:"senderId" bson:"sender_id"`
	Content        string     `json:"content" bson:"content"`
	ReadAt         *time.Time `json:"readAt,omitempty" bson:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" bson:"created_at"`
}

type Notification struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	Type      string    `json:"type" bson:"type"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body,omitempty" bson:"body,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
