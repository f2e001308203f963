package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// CanTransitionTo allows moderation exactly once, out of pending.
func (s Status) CanTransitionTo(to Status) bool {
	return s == StatusPending && (to == StatusApproved || to == StatusRejected)
}

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("status must be one of pending approved rejected, got %q", value)
	}

	return status, nil
}
