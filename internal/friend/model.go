package friend

import "time"

// Friend is one edge of a symmetric friendship as seen from the owning user.
type Friend struct {
	UserID    int64     `json:"user_id"`
	FriendID  int64     `json:"friend_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
