package models

import "time"

// NotificationState tracks when each goal was last reminded about, keyed by
// goal ID. Entries for deleted goals are pruned on save.
type NotificationState struct {
	LastRemindedAt map[string]time.Time `json:"lastRemindedAt"`
}

// NewNotificationState returns an empty, usable state
func NewNotificationState() NotificationState {
	return NotificationState{LastRemindedAt: map[string]time.Time{}}
}
