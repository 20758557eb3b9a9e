package activity

import "time"

// Activity event types.
const (
	TypeExpenseCreated = "expense_created"
	TypeExpenseEdited  = "expense_edited"
	TypeExpenseSettled = "expense_settled"
)

// Activity represents one event in the activity feed.
type Activity struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	ExpenseID int64     `json:"expense_id"`
	ActorID   int64     `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN
	ActorName   string  `json:"actor_name,omitempty"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}
