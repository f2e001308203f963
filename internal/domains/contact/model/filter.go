package model

import "strings"

// FilterMessages keeps messages whose status contains status and whose name, email or
// subject contains search, ignoring case. The input is left untouched.
func FilterMessages(messages []ContactMessage, status, search string) []ContactMessage {
	status = strings.ToLower(strings.TrimSpace(NormalizeStatusQuery(status)))
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]ContactMessage, 0, len(messages))

	for _, message := range messages {
		if status != "" && !strings.Contains(message.Status.String(), status) {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(message.Name), search) &&
			!strings.Contains(strings.ToLower(message.Email), search) &&
			!strings.Contains(strings.ToLower(message.Subject), search) {
			continue
		}

		filtered = append(filtered, message)
	}

	return filtered
}
