package balance

import (
	"time"

	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// BalancesResponse is the full balance report for the viewing user. All
// amounts are rounded to two decimals here, at the presentation boundary.
type BalancesResponse struct {
	NetBalance float64                  `json:"net_balance"`
	TotalOwed  float64                  `json:"total_owed"`
	TotalOwe   float64                  `json:"total_owe"`
	Friends    []*FriendBalanceResponse `json:"friends"`
	Groups     []*GroupTotalResponse    `json:"groups"`
}

// FriendBalanceResponse is the bilateral position against one friend.
type FriendBalanceResponse struct {
	FriendID   int64   `json:"friend_id"`
	FriendName string  `json:"friend_name,omitempty"`
	TheyOwe    float64 `json:"they_owe"`
	YouOwe     float64 `json:"you_owe"`
	NetBalance float64 `json:"net_balance"`
}

// GroupTotalResponse is the aggregate for one group.
type GroupTotalResponse struct {
	GroupID       int64   `json:"group_id"`
	TotalExpenses float64 `json:"total_expenses"`
	LastActivity  *string `json:"last_activity,omitempty"`
}

func newFriendBalanceResponse(friendID int64, name string, fb *FriendBalance) *FriendBalanceResponse {
	return &FriendBalanceResponse{
		FriendID:   friendID,
		FriendName: name,
		TheyOwe:    money.ToFloat(fb.TheyOwe),
		YouOwe:     money.ToFloat(fb.YouOwe),
		NetBalance: money.ToFloat(fb.Net),
	}
}

func newGroupTotalResponse(groupID int64, gt *GroupTotal) *GroupTotalResponse {
	resp := &GroupTotalResponse{
		GroupID:       groupID,
		TotalExpenses: money.ToFloat(gt.TotalExpenses),
	}
	if !gt.LastActivity.IsZero() {
		last := gt.LastActivity.Format(time.RFC3339)
		resp.LastActivity = &last
	}
	return resp
}
