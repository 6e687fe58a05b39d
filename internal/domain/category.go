package domain

import "time"

// Category names are unique, case-sensitive and stored trimmed. Foods
// reference categories by name.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
