package group

import "time"

// Member roles within a group.
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// Group is a named circle of users that expenses can be recorded against.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a user's membership in a group.
type Member struct {
	GroupID  int64     `json:"group_id"`
	UserID   int64     `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	Name     string    `json:"name,omitempty"`
}

// GroupWithMembers is a group together with its full member list.
type GroupWithMembers struct {
	Group
	Members []*Member `json:"members"`
}
