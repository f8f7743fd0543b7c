package events

// UserRegistered is published after a successful registration.
type UserRegistered struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Producer abstracts the messaging backend (NATS/Kafka). Key is used for
// partitioning where the backend supports it.
type Producer interface {
	Publish(key string, value interface{}) error
	Close() error
}
