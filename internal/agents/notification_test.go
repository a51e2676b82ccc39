package agents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNotification(t *testing.T) {
	store := newNotificationStore(nil)

	raw := store.sendNotification(context.Background(), `{"user_id":"user_1","title":"Booking confirmed","message":"Your flight is booked","notification_type":"push"}`)
	decoded := decodeResult(t, raw)

	require.Equal(t, "success", decoded["status"])
	assert.Equal(t, "notif_1", decoded["notification_id"])
	assert.Equal(t, "Notification sent successfully", decoded["message"])

	stored := store.notifications["notif_1"]
	require.NotNil(t, stored)
	assert.Equal(t, "push", stored.Channel)
	assert.False(t, stored.IsRead)
	assert.Nil(t, stored.ReadAt)
}

func TestSendNotificationSequentialIDsAndDefaultChannel(t *testing.T) {
	store := newNotificationStore(nil)

	first := decodeResult(t, store.sendNotification(context.Background(), `{"user_id":"u"}`))
	second := decodeResult(t, store.sendNotification(context.Background(), `{"user_id":"u"}`))

	assert.Equal(t, "notif_1", first["notification_id"])
	assert.Equal(t, "notif_2", second["notification_id"])
	assert.Equal(t, "email", store.notifications["notif_1"].Channel)
}

func TestGetUserNotifications(t *testing.T) {
	store := newNotificationStore(nil)
	for i := 0; i < 3; i++ {
		store.sendNotification(context.Background(), fmt.Sprintf(`{"user_id":"alice","title":"t%d"}`, i))
	}
	store.sendNotification(context.Background(), `{"user_id":"bob","title":"other"}`)

	decoded := decodeResult(t, store.getUserNotifications(context.Background(), `{"user_id":"alice"}`))
	require.Equal(t, "success", decoded["status"])

	notifications := decoded["notifications"].([]any)
	require.Len(t, notifications, 3)
	assert.Equal(t, float64(3), decoded["total"])
	assert.Equal(t, float64(3), decoded["unread_count"])

	// Newest first
	assert.Equal(t, "t2", notifications[0].(map[string]any)["title"])
	assert.Equal(t, "t0", notifications[2].(map[string]any)["title"])
}

func TestGetUserNotificationsLimitAndCounts(t *testing.T) {
	store := newNotificationStore(nil)
	for i := 0; i < 5; i++ {
		store.sendNotification(context.Background(), `{"user_id":"alice"}`)
	}
	store.markNotificationRead(context.Background(), `{"notification_id":"notif_1"}`)

	decoded := decodeResult(t, store.getUserNotifications(context.Background(), `{"user_id":"alice","limit":2}`))
	require.Equal(t, "success", decoded["status"])

	assert.Len(t, decoded["notifications"].([]any), 2)
	assert.Equal(t, float64(5), decoded["total"], "total covers the pre-truncation set")
	assert.Equal(t, float64(4), decoded["unread_count"])
}

func TestGetUserNotificationsUnreadOnly(t *testing.T) {
	store := newNotificationStore(nil)
	store.sendNotification(context.Background(), `{"user_id":"alice"}`)
	store.sendNotification(context.Background(), `{"user_id":"alice"}`)
	store.markNotificationRead(context.Background(), `{"notification_id":"notif_1"}`)

	decoded := decodeResult(t, store.getUserNotifications(context.Background(), `{"user_id":"alice","unread_only":true}`))
	require.Equal(t, "success", decoded["status"])

	notifications := decoded["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, "notif_2", notifications[0].(map[string]any)["notification_id"])
	assert.Equal(t, float64(1), decoded["total"])
}

func TestGetUserNotificationsNoneFound(t *testing.T) {
	store := newNotificationStore(nil)
	decoded := decodeResult(t, store.getUserNotifications(context.Background(), `{"user_id":"ghost"}`))

	require.Equal(t, "success", decoded["status"])
	assert.Len(t, decoded["notifications"].([]any), 0)
	assert.Equal(t, float64(0), decoded["total"])
}

func TestMarkNotificationReadIdempotent(t *testing.T) {
	store := newNotificationStore(nil)
	store.sendNotification(context.Background(), `{"user_id":"alice"}`)

	first := decodeResult(t, store.markNotificationRead(context.Background(), `{"notification_id":"notif_1"}`))
	require.Equal(t, "success", first["status"])

	stored := store.notifications["notif_1"]
	require.True(t, stored.IsRead)
	require.NotNil(t, stored.ReadAt)
	readAt := *stored.ReadAt

	second := decodeResult(t, store.markNotificationRead(context.Background(), `{"notification_id":"notif_1"}`))
	require.Equal(t, "success", second["status"])
	assert.True(t, stored.IsRead)
	assert.Equal(t, readAt, *stored.ReadAt, "second mark-read leaves read_at unchanged")
}

func TestMarkNotificationReadUnknown(t *testing.T) {
	store := newNotificationStore(nil)
	decoded := decodeResult(t, store.markNotificationRead(context.Background(), `{"notification_id":"notif_99"}`))
	assert.Equal(t, "error", decoded["status"])
	assert.Equal(t, "Notification not found", decoded["message"])
}

func TestNewNotificationAgentCatalog(t *testing.T) {
	agent := NewNotificationAgent(5, nil, nil)
	assert.Equal(t, "notification", agent.Name())
	assert.Equal(t, []string{"send_notification", "get_user_notifications", "mark_notification_read"}, agent.ToolNames())
}
