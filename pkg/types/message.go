package types

import "time"

type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversationId"`
	SenderID       string    `db:"sender_id" json:"senderId"`
	RecipientID    string    `db:"recipient_id" json:"recipientId"`
	NonprofitID    string    `db:"nonprofit_id" json:"nonprofitId"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
