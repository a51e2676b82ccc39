package agents

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// Notification is a record owned by the notification agent's in-memory
// table. Created by send_notification; mutated only by mark_notification_read.
// Never deleted.
type Notification struct {
	ID        string         `json:"notification_id"`
	UserID    string         `json:"user_id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Channel   string         `json:"notification_type"`
	Metadata  map[string]any `json:"metadata"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}

// notificationStore holds the notification agent's records for the process
// lifetime. IDs are sequential ("notif_1", "notif_2", ...).
type notificationStore struct {
	mu            sync.Mutex
	notifications map[string]*Notification
	order         []string
	nextID        int
	logger        logger.Logger
}

func newNotificationStore(log logger.Logger) *notificationStore {
	return &notificationStore{
		notifications: make(map[string]*Notification),
		nextID:        1,
		logger:        log,
	}
}

// NewNotificationAgent creates the agent managing user notifications.
// Slightly creative temperature for notification content.
func NewNotificationAgent(maxToolRounds int, factory PlannerFactory, log logger.Logger) *Agent {
	store := newNotificationStore(log)

	return NewAgent(
		"notification",
		"Manages user notifications and alerts.",
		[]planner.Tool{
			store.sendNotificationTool(),
			store.listNotificationsTool(),
			store.markReadTool(),
		},
		planner.Config{Temperature: 0.3, MaxToolRounds: maxToolRounds},
		factory,
		log,
	)
}

func (s *notificationStore) sendNotificationTool() planner.Tool {
	return planner.Tool{
		Name: "send_notification",
		Description: "Send a notification to a user. " +
			"Input should be a JSON object with 'user_id', 'title', 'message', " +
			"'notification_type' (email/sms/push), and optional 'metadata'.",
		Invoke: s.sendNotification,
	}
}

func (s *notificationStore) listNotificationsTool() planner.Tool {
	return planner.Tool{
		Name: "get_user_notifications",
		Description: "Get notifications for a specific user. " +
			"Input should be a JSON object with 'user_id' and optional 'limit' and 'unread_only'.",
		Invoke: s.getUserNotifications,
	}
}

func (s *notificationStore) markReadTool() planner.Tool {
	return planner.Tool{
		Name: "mark_notification_read",
		Description: "Mark a notification as read. " +
			"Input should be a JSON object with 'notification_id'.",
		Invoke: s.markNotificationRead,
	}
}

// sendNotification records a notification and simulates delivery through a
// structured log line per channel.
func (s *notificationStore) sendNotification(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	s.mu.Lock()
	notification := &Notification{
		ID:        fmt.Sprintf("notif_%d", s.nextID),
		UserID:    stringField(data, "user_id", ""),
		Title:     stringField(data, "title", ""),
		Message:   stringField(data, "message", ""),
		Channel:   stringField(data, "notification_type", "email"),
		Metadata:  mapField(data, "metadata"),
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.notifications[notification.ID] = notification
	s.order = append(s.order, notification.ID)
	s.mu.Unlock()

	// A real implementation would hand off to an email/SMS/push provider
	if s.logger != nil {
		s.logger.Info("Notification dispatched",
			logger.StringField("channel", notification.Channel),
			logger.StringField("notification_id", notification.ID),
			logger.StringField("user_id", notification.UserID),
			logger.StringField("title", notification.Title),
		)
	}

	return successResult(map[string]any{
		"notification_id": notification.ID,
		"message":         "Notification sent successfully",
	})
}

// getUserNotifications lists a user's notifications newest first. Total and
// unread counts cover the filtered set before the limit is applied.
func (s *notificationStore) getUserNotifications(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	userID := stringField(data, "user_id", "")
	limit := intField(data, "limit", 10)
	unreadOnly := boolField(data, "unread_only", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*Notification
	for _, id := range s.order {
		notification := s.notifications[id]
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		matched = append(matched, notification)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	unread := 0
	for _, notification := range matched {
		if !notification.IsRead {
			unread++
		}
	}

	total := len(matched)
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	if matched == nil {
		matched = []*Notification{}
	}

	return successResult(map[string]any{
		"notifications": matched,
		"total":         total,
		"unread_count":  unread,
	})
}

// markNotificationRead marks a notification read. Idempotent: a second call
// succeeds and leaves read_at unchanged.
func (s *notificationStore) markNotificationRead(_ context.Context, payload string) string {
	data, err := decodePayload(payload)
	if err != nil {
		return errorResult("%v", err)
	}

	notificationID := stringField(data, "notification_id", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[notificationID]
	if !ok {
		return errorResult("Notification not found")
	}

	if !notification.IsRead {
		now := time.Now().UTC()
		notification.IsRead = true
		notification.ReadAt = &now
	}

	return successResult(map[string]any{
		"message": "Notification marked as read",
	})
}
