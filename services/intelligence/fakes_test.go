package ai

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingRepo "washdesk/database/repository/booking"
	conversationRepo "washdesk/database/repository/conversation"
	"washdesk/models"

	"github.com/google/uuid"
)

// memoryTurnRepo keeps turns in memory and orders them the way the Mongo
// repository does.
type memoryTurnRepo struct {
	mu        sync.Mutex
	turns     []models.ChatTurn
	clock     time.Time
	appendErr error
	readErr   error
	appends   int
}

func newMemoryTurnRepo() *memoryTurnRepo {
	return &memoryTurnRepo{clock: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *memoryTurnRepo) AppendExchange(_ context.Context, sessionID, userText, assistantText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.clock = r.clock.Add(time.Second)
	r.turns = append(r.turns, conversationRepo.NewExchange(sessionID, userText, assistantText, r.clock)...)
	r.appends++
	return nil
}

func (r *memoryTurnRepo) RecentTurns(_ context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	if limit <= 0 {
		return []models.ChatTurn{}, nil
	}
	var matched []models.ChatTurn
	for _, t := range r.turns {
		if t.SessionID == sessionID {
			matched = append(matched, t)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	out := make([]models.ChatTurn, len(matched))
	copy(out, matched)
	return out, nil
}

func (r *memoryTurnRepo) EnsureIndexes(context.Context) error { return nil }

// scriptedModel replies from a queue and records every prompt it saw.
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts [][]models.ChatMessage
	opts    []GenerationOptions
}

func (m *scriptedModel) Complete(_ context.Context, messages []models.ChatMessage, opts GenerationOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, messages)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

// memoryBookingRepo enforces the unique extraction key like the Mongo index.
type memoryBookingRepo struct {
	mu        sync.Mutex
	rows      []models.Booking
	createErr error
}

func (r *memoryBookingRepo) Create(_ context.Context, b *models.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	if b.ExtractionKey != "" {
		for _, row := range r.rows {
			if row.ExtractionKey == b.ExtractionKey {
				return "", bookingRepo.ErrDuplicateExtraction
			}
		}
	}
	b.ID = uuid.New().String()
	b.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, *b)
	return b.ID, nil
}

func (r *memoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			b := row
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *memoryBookingRepo) GetByExtractionKey(_ context.Context, key string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ExtractionKey == key {
			b := row
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *memoryBookingRepo) List(_ context.Context, limit int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *memoryBookingRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memoryBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type countingNotifier struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (n *countingNotifier) BookingCreated(_ context.Context, b models.Booking) {
	n.mu.Lock()
	n.bookings = append(n.bookings, b)
	n.mu.Unlock()
}

func (n *countingNotifier) ContactReceived(context.Context, models.Contact) {}
