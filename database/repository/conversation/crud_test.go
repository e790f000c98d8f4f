package conversationRepo

import (
	"reflect"
	"testing"
	"time"

	"washdesk/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNewExchange(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 123456789, time.FixedZone("EST", -5*3600))
	turns := NewExchange("s-1", "hello", "hi there", now)

	if len(turns) != 2 {
		t.Fatalf("len = %d", len(turns))
	}
	user, assistant := turns[0], turns[1]
	if user.Role != models.RoleUser || assistant.Role != models.RoleAssistant {
		t.Fatalf("roles = %s, %s", user.Role, assistant.Role)
	}
	if user.Text != "hello" || assistant.Text != "hi there" {
		t.Fatal("texts swapped")
	}
	if user.SessionID != "s-1" || assistant.SessionID != "s-1" {
		t.Fatal("session id not set")
	}
	if user.ID == "" || user.ID == assistant.ID {
		t.Fatal("turns need distinct ids")
	}
	if !assistant.CreatedAt.After(user.CreatedAt) {
		t.Fatal("assistant turn must sort after the user turn")
	}
	if user.CreatedAt.Location() != time.UTC || user.CreatedAt.Nanosecond()%int(time.Millisecond) != 0 {
		t.Fatalf("timestamp not normalized: %v", user.CreatedAt)
	}
}

func TestRecentTurnsQuery(t *testing.T) {
	filter, opts := recentTurnsQuery("s-1.*", 6)
	if !reflect.DeepEqual(filter, bson.M{"sessionId": "s-1.*"}) {
		t.Fatalf("filter = %v", filter)
	}
	wantSort := bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	if !reflect.DeepEqual(opts.Sort, wantSort) {
		t.Fatalf("sort = %v", opts.Sort)
	}
	if opts.Limit == nil || *opts.Limit != 6 {
		t.Fatalf("limit = %v", opts.Limit)
	}
}

func TestOldestFirst(t *testing.T) {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var stored []models.ChatTurn
	for i := 0; i < 3; i++ {
		stored = append(stored, NewExchange("s-1", "q", "a", base.Add(time.Duration(i)*time.Minute))...)
	}

	// What the cursor returns for limit 4: the newest four, newest first.
	page := []models.ChatTurn{stored[5], stored[4], stored[3], stored[2]}
	got := oldestFirst(page)

	want := stored[2:]
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("turn %d = %s, want %s", i, got[i].ID, want[i].ID)
		}
	}
	if got[0].Role != models.RoleUser || got[len(got)-1].Role != models.RoleAssistant {
		t.Fatal("page must open with a user turn and close with the latest reply")
	}

	if len(oldestFirst(nil)) != 0 || len(oldestFirst([]models.ChatTurn{stored[0]})) != 1 {
		t.Fatal("short pages")
	}
}
