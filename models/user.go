package models

// UserStatus is a user's standing in the registry.
type UserStatus string

const (
	StatusPending UserStatus = "pending"
	StatusAllowed UserStatus = "allowed"
	StatusBanned  UserStatus = "banned"
)

// User is one registered bot user.
type User struct {
	ID        int64
	Username  string
	Status    UserStatus
	CreatedAt int64
}

// Event is one audit-log record of user activity.
type Event struct {
	UserID    int64
	Username  string
	Type      string
	Details   string
	Timestamp int64
}

// Event types recorded in the audit log.
const (
	EventUserPending  = "new_user_pending"
	EventUserApproved = "approved"
	EventUserRejected = "rejected"
	EventFileSent     = "file_sent"
	EventQuizAnswer   = "quiz_answer"
	EventQuizDone     = "quiz_done"
)
