package balance

import (
	"context"
	"sort"

	"github.com/Khanalpratyush/splittwise/internal/expense"
	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// ExpenseSource yields the expense set visible to a user.
type ExpenseSource interface {
	ListForUser(ctx context.Context, userID int64) ([]*expense.ExpenseWithSplits, error)
}

// UserDirectory resolves the set of known users to their display names.
type UserDirectory interface {
	Directory(ctx context.Context) (map[int64]string, error)
}

// FriendSource yields the ids of a user's friends. Friends bound which
// bilateral balances are surfaced; balances are still computed from the full
// expense set.
type FriendSource interface {
	ListFriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Service derives balances on demand. There is no stored ledger: every call
// recomputes from the current expense set, so a read is always consistent
// with the records that exist at that moment.
type Service struct {
	expenses ExpenseSource
	users    UserDirectory
	friends  FriendSource
}

// NewService creates a new balance service with dependencies injected.
func NewService(expenses ExpenseSource, users UserDirectory, friends FriendSource) *Service {
	return &Service{expenses: expenses, users: users, friends: friends}
}

// Balances computes the viewer's summary, per-friend, and per-group balances.
func (s *Service) Balances(ctx context.Context, viewerID int64) (*BalancesResponse, error) {
	visible, err := s.expenses.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	directory, err := s.users.Directory(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(directory))
	for id := range directory {
		known[id] = true
	}

	report := Compute(viewerID, visible, known)

	friendIDs, err := s.friends.ListFriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	resp := &BalancesResponse{
		NetBalance: money.ToFloat(report.Summary.Net),
		TotalOwed:  money.ToFloat(report.Summary.TotalOwed),
		TotalOwe:   money.ToFloat(report.Summary.TotalOwe),
		Friends:    make([]*FriendBalanceResponse, 0, len(friendIDs)),
		Groups:     make([]*GroupTotalResponse, 0, len(report.Groups)),
	}

	// Every friend gets an entry, zero-balance included; counterparties the
	// viewer has not befriended are not surfaced individually but remain in
	// the summary totals.
	for _, id := range friendIDs {
		fb, ok := report.Friends[id]
		if !ok {
			fb = &FriendBalance{}
		}
		resp.Friends = append(resp.Friends, newFriendBalanceResponse(id, directory[id], fb))
	}

	for groupID, gt := range report.Groups {
		resp.Groups = append(resp.Groups, newGroupTotalResponse(groupID, gt))
	}
	sort.Slice(resp.Groups, func(i, j int) bool {
		return resp.Groups[i].GroupID < resp.Groups[j].GroupID
	})

	return resp, nil
}
