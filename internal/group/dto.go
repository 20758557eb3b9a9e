package group

import "strings"

// CreateGroupRequest is the payload for creating a group.
type CreateGroupRequest struct {
	Name      string  `json:"name"`
	MemberIDs []int64 `json:"member_ids"`
}

// Validate checks the payload and returns a human-readable message when it
// is unusable.
func (r *CreateGroupRequest) Validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if len(r.Name) > 100 {
		return "name must be at most 100 characters"
	}
	return ""
}
