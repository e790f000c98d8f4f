package conversationRepo

import (
	"context"

	"washdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConversationRepository is the append-only store of chat turns, partitioned
// by session id.
type ConversationRepository interface {
	// AppendExchange writes the user turn and the assistant turn of one
	// request as a single logical write.
	AppendExchange(ctx context.Context, sessionID, userText, assistantText string) error
	// RecentTurns returns up to limit most recent turns of the session,
	// oldest first.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoConversationRepo struct {
	coll          *mongo.Collection
	transactional bool
}

// NewMongoConversationRepo returns a ConversationRepository backed by the
// chat_turns collection. With transactional set, both turns of an exchange
// are inserted inside a multi-document transaction (requires a replica set);
// otherwise they go out as one ordered InsertMany.
func NewMongoConversationRepo(db *mongo.Database, transactional bool) ConversationRepository {
	return &mongoConversationRepo{
		coll:          db.Collection("chat_turns"),
		transactional: transactional,
	}
}
