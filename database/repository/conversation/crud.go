package conversationRepo

import (
	"context"
	"fmt"
	"time"

	"washdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewExchange builds the two turns of one request. The assistant turn is
// stamped 1ms after the user turn so the pair always sorts user-first.
func NewExchange(sessionID, userText, assistantText string, now time.Time) []models.ChatTurn {
	at := now.UTC().Truncate(time.Millisecond)
	return []models.ChatTurn{
		{ID: uuid.New().String(), SessionID: sessionID, Role: models.RoleUser, Text: userText, CreatedAt: at},
		{ID: uuid.New().String(), SessionID: sessionID, Role: models.RoleAssistant, Text: assistantText, CreatedAt: at.Add(time.Millisecond)},
	}
}

func (r *mongoConversationRepo) AppendExchange(ctx context.Context, sessionID, userText, assistantText string) error {
	turns := NewExchange(sessionID, userText, assistantText, time.Now())
	docs := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		docs = append(docs, t)
	}

	if !r.transactional {
		if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
			return fmt.Errorf("append exchange for session %s: %w", sessionID, err)
		}
		return nil
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if _, err := r.coll.InsertMany(sc, docs, options.InsertMany().SetOrdered(true)); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("append exchange transaction for session %s: %w", sessionID, err)
	}
	return nil
}

func (r *mongoConversationRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	if limit <= 0 {
		return []models.ChatTurn{}, nil
	}

	filter, opts := recentTurnsQuery(sessionID, limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find turns for session %s: %w", sessionID, err)
	}
	defer cursor.Close(ctx)

	turns := []models.ChatTurn{}
	if err := cursor.All(ctx, &turns); err != nil {
		return nil, fmt.Errorf("decode turns for session %s: %w", sessionID, err)
	}
	return oldestFirst(turns), nil
}

// recentTurnsQuery selects the newest limit turns of a session, newest first.
// _id breaks createdAt ties so equal timestamps keep insertion order.
func recentTurnsQuery(sessionID string, limit int) (bson.M, *options.FindOptions) {
	// Plain string equality on sessionId; never a pattern.
	filter := bson.M{"sessionId": sessionID}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return filter, opts
}

// oldestFirst reverses a newest-first page in place.
func oldestFirst(turns []models.ChatTurn) []models.ChatTurn {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns
}
