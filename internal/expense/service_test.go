package expense

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khanalpratyush/splittwise/internal/activity"
	"github.com/Khanalpratyush/splittwise/internal/expense/split"
)

// fakeStore is an in-memory Store for exercising the service without a
// database.
type fakeStore struct {
	nextExpenseID int64
	nextSplitID   int64
	expenses      map[int64]*Expense
	splits        map[int64][]*Split
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextExpenseID: 1,
		nextSplitID:   1,
		expenses:      make(map[int64]*Expense),
		splits:        make(map[int64][]*Split),
	}
}

func (f *fakeStore) CreateExpense(_ context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error) {
	e.ID = f.nextExpenseID
	f.nextExpenseID++
	f.expenses[e.ID] = e
	for _, s := range splits {
		s.ID = f.nextSplitID
		f.nextSplitID++
		s.ExpenseID = e.ID
	}
	f.splits[e.ID] = splits
	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

func (f *fakeStore) GetExpense(_ context.Context, id int64) (*Expense, error) {
	return f.expenses[id], nil
}

func (f *fakeStore) GetSplits(_ context.Context, expenseID int64) ([]*Split, error) {
	return f.splits[expenseID], nil
}

func (f *fakeStore) ListForUser(_ context.Context, userID int64) ([]*ExpenseWithSplits, error) {
	out := make([]*ExpenseWithSplits, 0)
	for id, e := range f.expenses {
		visible := e.PayerID == userID
		for _, s := range f.splits[id] {
			if s.UserID == userID {
				visible = true
			}
		}
		if visible {
			out = append(out, &ExpenseWithSplits{Expense: e, Splits: f.splits[id]})
		}
	}
	return out, nil
}

func (f *fakeStore) ListByGroup(_ context.Context, groupID int64, _, _ int) ([]*ExpenseWithSplits, int, error) {
	out := make([]*ExpenseWithSplits, 0)
	for id, e := range f.expenses {
		if e.GroupID != nil && *e.GroupID == groupID {
			out = append(out, &ExpenseWithSplits{Expense: e, Splits: f.splits[id]})
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) UpdateExpense(_ context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error) {
	if _, ok := f.expenses[e.ID]; !ok {
		return nil, nil
	}
	f.expenses[e.ID] = e
	for _, s := range splits {
		s.ID = f.nextSplitID
		f.nextSplitID++
		s.ExpenseID = e.ID
	}
	f.splits[e.ID] = splits
	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

func (f *fakeStore) DeleteExpense(_ context.Context, id int64) error {
	delete(f.expenses, id)
	delete(f.splits, id)
	return nil
}

func (f *fakeStore) SettleSplit(_ context.Context, expenseID, userID int64) (*Split, bool, error) {
	for _, s := range f.splits[expenseID] {
		if s.UserID != userID {
			continue
		}
		if s.Settled {
			return s, false, nil
		}
		s.Settled = true
		return s, true, nil
	}
	return nil, false, nil
}

// fakeActivities records events so tests can assert what was published.
type fakeActivities struct {
	events []string
}

func (f *fakeActivities) Record(_ context.Context, eventType string, _, _ int64) {
	f.events = append(f.events, eventType)
}

func newTestService() (*Service, *fakeStore, *fakeActivities) {
	store := newFakeStore()
	activities := &fakeActivities{}
	return NewService(store, split.NewFactory(), activities), store, activities
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateExpenseEqual(t *testing.T) {
	svc, _, activities := newTestService()

	result, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description: "dinner",
		Amount:      100,
		Kind:        "SPLIT",
		SplitType:   "EQUAL",
		Participants: []*ParticipantInput{
			{UserID: 2},
			{UserID: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Splits, 2)
	assert.True(t, result.Splits[0].Amount.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, result.Splits[1].Amount.Equal(decimal.RequireFromString("33.34")))
	assert.True(t, result.PayerShare().Equal(decimal.RequireFromString("33.33")))
	assert.Equal(t, []string{activity.TypeExpenseCreated}, activities.events)
}

func TestCreateExpenseSolo(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description: "coffee",
		Amount:      4.5,
		Kind:        "SOLO",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Splits)
	assert.Nil(t, result.Expense.SplitType)
	assert.True(t, result.PayerShare().Equal(decimal.RequireFromString("4.5")))
}

func TestCreateExpenseRejectsBadInput(t *testing.T) {
	svc, _, activities := newTestService()

	_, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description: "dinner",
		Amount:      100,
		Kind:        "HALFSIES",
	})
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description: "dinner",
		Amount:      0,
		Kind:        "SOLO",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description: "dinner",
		Amount:      100,
		Kind:        "SPLIT",
		SplitType:   "EXACT",
		Participants: []*ParticipantInput{
			{UserID: 2, Amount: floatPtr(70)},
			{UserID: 3, Amount: floatPtr(70)},
		},
	})
	var vErr *split.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, split.CodeAmountMismatch, vErr.Code)

	assert.Empty(t, activities.events, "failed creates must not publish events")
}

func TestUpdateExpenseOnlyPayer(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description:  "dinner",
		Amount:       60,
		Kind:         "SPLIT",
		SplitType:    "EQUAL",
		Participants: []*ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateExpense(context.Background(), created.Expense.ID, 2, &UpdateExpenseRequest{
		Description:  "dinner",
		Amount:       80,
		Kind:         "SPLIT",
		SplitType:    "EQUAL",
		Participants: []*ParticipantInput{{UserID: 2}},
	})
	assert.ErrorIs(t, err, ErrNotPayer)
}

func TestUpdateExpenseRecomputesSplits(t *testing.T) {
	svc, store, activities := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description:  "dinner",
		Amount:       60,
		Kind:         "SPLIT",
		SplitType:    "EQUAL",
		Participants: []*ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	// Settle before the edit; the replacement split starts unsettled again.
	_, _, err = store.SettleSplit(context.Background(), created.Expense.ID, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateExpense(context.Background(), created.Expense.ID, 1, &UpdateExpenseRequest{
		Description: "dinner and drinks",
		Amount:      90,
		Kind:        "SPLIT",
		SplitType:   "EXACT",
		Participants: []*ParticipantInput{
			{UserID: 2, Amount: floatPtr(25)},
			{UserID: 3, Amount: floatPtr(30)},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Splits, 2)
	assert.False(t, updated.Splits[0].Settled)
	assert.True(t, updated.PayerShare().Equal(decimal.RequireFromString("35")))
	assert.Equal(t, []string{activity.TypeExpenseCreated, activity.TypeExpenseEdited}, activities.events)
}

func TestDeleteExpenseOnlyPayer(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description: "coffee",
		Amount:      4.5,
		Kind:        "SOLO",
	})
	require.NoError(t, err)

	err = svc.DeleteExpense(context.Background(), created.Expense.ID, 2)
	assert.ErrorIs(t, err, ErrNotPayer)

	require.NoError(t, svc.DeleteExpense(context.Background(), created.Expense.ID, 1))

	_, err = svc.GetExpense(context.Background(), created.Expense.ID)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestSettleSplitIdempotent(t *testing.T) {
	svc, _, activities := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description:  "dinner",
		Amount:       60,
		Kind:         "SPLIT",
		SplitType:    "EQUAL",
		Participants: []*ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	first, err := svc.SettleSplit(context.Background(), created.Expense.ID, 2)
	require.NoError(t, err)
	assert.True(t, first.Settled)

	// Repeating the call succeeds without publishing a second event.
	second, err := svc.SettleSplit(context.Background(), created.Expense.ID, 2)
	require.NoError(t, err)
	assert.True(t, second.Settled)
	assert.Equal(t, []string{activity.TypeExpenseCreated, activity.TypeExpenseSettled}, activities.events)
}

func TestSettleSplitErrors(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.CreateExpense(context.Background(), 1, &CreateExpenseRequest{
		Description:  "dinner",
		Amount:       60,
		Kind:         "SPLIT",
		SplitType:    "EQUAL",
		Participants: []*ParticipantInput{{UserID: 2}},
	})
	require.NoError(t, err)

	// The payer has no split row of their own to settle.
	_, err = svc.SettleSplit(context.Background(), created.Expense.ID, 1)
	assert.ErrorIs(t, err, ErrSplitNotFound)

	_, err = svc.SettleSplit(context.Background(), 999, 2)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
