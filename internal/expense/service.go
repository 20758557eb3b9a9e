package expense

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/internal/activity"
	"github.com/Khanalpratyush/splittwise/internal/expense/split"
	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrSplitNotFound   = errors.New("no split for this user on this expense")
	ErrNotPayer        = errors.New("only the payer can modify this expense")
	ErrInvalidKind     = errors.New("kind must be SOLO or SPLIT")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
)

// ActivityLogger records expense events for the activity feed. Recording is
// best effort; failures must not fail the expense operation.
type ActivityLogger interface {
	Record(ctx context.Context, eventType string, expenseID, actorID int64)
}

// Service handles expense business logic.
type Service struct {
	store        Store
	splitFactory *split.Factory
	activities   ActivityLogger
}

// NewService creates a new expense service with dependencies injected.
func NewService(store Store, splitFactory *split.Factory, activities ActivityLogger) *Service {
	return &Service{
		store:        store,
		splitFactory: splitFactory,
		activities:   activities,
	}
}

// buildSplits runs the allocator for a SPLIT expense and converts the result
// into persistable Split rows. For SOLO expenses it returns no splits.
func (s *Service) buildSplits(kind Kind, splitType string, amount decimal.Decimal, payerID int64, participants []*ParticipantInput) ([]*Split, *string, error) {
	if kind == KindSolo {
		return nil, nil, nil
	}

	strategy, err := s.splitFactory.CreateFromString(splitType)
	if err != nil {
		return nil, nil, err
	}

	inputs := make([]split.Participant, len(participants))
	for i, p := range participants {
		inputs[i] = p.ToSplitParticipant()
	}

	result, err := strategy.Allocate(amount, payerID, inputs)
	if err != nil {
		return nil, nil, err
	}

	splits := make([]*Split, len(result.Allocations))
	for i, a := range result.Allocations {
		splits[i] = &Split{UserID: a.UserID, Amount: a.Amount}
	}
	st := string(strategy.Type())
	return splits, &st, nil
}

// CreateExpense validates the request, allocates splits for shared expenses,
// and persists the result. The authenticated user is always the payer.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	kind := Kind(req.Kind)
	if kind != KindSolo && kind != KindSplit {
		return nil, ErrInvalidKind
	}

	amount := money.FromFloat(req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	splits, splitType, err := s.buildSplits(kind, req.SplitType, amount, payerID, req.Participants)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		PayerID:     payerID,
		GroupID:     req.GroupID,
		Description: req.Description,
		Amount:      amount,
		Kind:        kind,
		SplitType:   splitType,
		Date:        time.Now().UTC(),
	}

	created, err := s.store.CreateExpense(ctx, e, splits)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeExpenseCreated, created.Expense.ID, payerID)
	return created, nil
}

// GetExpense retrieves an expense with its splits.
func (s *Service) GetExpense(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.store.GetSplits(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

// ListForUser retrieves the expenses visible to a user, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*ExpenseWithSplits, error) {
	return s.store.ListForUser(ctx, userID)
}

// ListByGroup retrieves expenses for a group with pagination.
func (s *Service) ListByGroup(ctx context.Context, groupID int64, page, perPage int) ([]*ExpenseWithSplits, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByGroup(ctx, groupID, perPage, offset)
}

// UpdateExpense rewrites an expense. Only the payer may edit; splits are
// recomputed and validated exactly as on create, and replaced splits start
// unsettled again.
func (s *Service) UpdateExpense(ctx context.Context, id, requesterID int64, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if existing.PayerID != requesterID {
		return nil, ErrNotPayer
	}

	kind := Kind(req.Kind)
	if kind != KindSolo && kind != KindSplit {
		return nil, ErrInvalidKind
	}

	amount := money.FromFloat(req.Amount)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	splits, splitType, err := s.buildSplits(kind, req.SplitType, amount, existing.PayerID, req.Participants)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		ID:          id,
		PayerID:     existing.PayerID,
		GroupID:     req.GroupID,
		Description: req.Description,
		Amount:      amount,
		Kind:        kind,
		SplitType:   splitType,
		PayerName:   existing.PayerName,
	}

	updated, err := s.store.UpdateExpense(ctx, e, splits)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}

	s.activities.Record(ctx, activity.TypeExpenseEdited, id, requesterID)
	return updated, nil
}

// DeleteExpense removes an expense. Only the payer may delete.
func (s *Service) DeleteExpense(ctx context.Context, id, requesterID int64) error {
	existing, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExpenseNotFound
	}
	if existing.PayerID != requesterID {
		return ErrNotPayer
	}

	return s.store.DeleteExpense(ctx, id)
}

// SettleSplit marks the requester's split on an expense as settled. Settling
// is idempotent and irreversible: the first call flips the flag, later calls
// succeed without changing anything, and there is no way back.
func (s *Service) SettleSplit(ctx context.Context, expenseID, requesterID int64) (*Split, error) {
	settled, transitioned, err := s.store.SettleSplit(ctx, expenseID, requesterID)
	if err != nil {
		return nil, err
	}
	if settled == nil {
		e, err := s.store.GetExpense(ctx, expenseID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, ErrExpenseNotFound
		}
		return nil, ErrSplitNotFound
	}

	if transitioned {
		s.activities.Record(ctx, activity.TypeExpenseSettled, expenseID, requesterID)
	}
	return settled, nil
}
