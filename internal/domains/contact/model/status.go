package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusNew     Status = "new"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"

	// statusUnread is accepted from clients and stored as StatusNew.
	statusUnread = "unread"
)

var Statuses = []Status{StatusNew, StatusRead, StatusReplied}

func (s Status) String() string {
	return string(s)
}

func (s Status) rank() int {
	for i, status := range Statuses {
		if status == s {
			return i
		}
	}

	return -1
}

func (s Status) Valid() bool {
	return s.rank() >= 0
}

// CanTransitionTo only allows moving forward: new, then read, then replied.
func (s Status) CanTransitionTo(to Status) bool {
	return s.Valid() && to.Valid() && to.rank() > s.rank()
}

func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == statusUnread {
		return StatusNew, nil
	}

	status := Status(normalized)
	if !status.Valid() {
		return "", fmt.Errorf("status must be one of new read replied, got %q", value)
	}

	return status, nil
}

// NormalizeStatusQuery maps the unread alias so list filters accept both words.
func NormalizeStatusQuery(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), statusUnread) {
		return StatusNew.String()
	}

	return value
}
