package expense

import (
	"time"

	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// CreateExpenseRequest represents the request to create an expense.
type CreateExpenseRequest struct {
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	GroupID      *int64              `json:"group_id,omitempty"`
	Kind         string              `json:"kind" validate:"required,oneof=SOLO SPLIT"`
	SplitType    string              `json:"split_type,omitempty" validate:"omitempty,oneof=EQUAL EXACT PERCENTAGE"`
	Participants []*ParticipantInput `json:"participants,omitempty"`
}

// UpdateExpenseRequest represents the request to edit an expense. Splits are
// recomputed and validated exactly as on create.
type UpdateExpenseRequest struct {
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       float64             `json:"amount" validate:"required,gt=0"`
	GroupID      *int64              `json:"group_id,omitempty"`
	Kind         string              `json:"kind" validate:"required,oneof=SOLO SPLIT"`
	SplitType    string              `json:"split_type,omitempty" validate:"omitempty,oneof=EQUAL EXACT PERCENTAGE"`
	Participants []*ParticipantInput `json:"participants,omitempty"`
}

// ExpenseResponse represents the response for an expense.
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	PayerID     int64            `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	GroupID     *int64           `json:"group_id,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	PayerShare  float64          `json:"payer_share"`
	Kind        Kind             `json:"kind"`
	SplitType   *string          `json:"split_type,omitempty"`
	Date        string           `json:"date"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split.
type SplitResponse struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	UserName string  `json:"user_name,omitempty"`
	Amount   float64 `json:"amount"`
	Settled  bool    `json:"settled"`
}

// ToResponse converts an expense and its splits to a response DTO.
func (e *ExpenseWithSplits) ToResponse() *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.Expense.ID,
		PayerID:     e.Expense.PayerID,
		PayerName:   e.Expense.PayerName,
		GroupID:     e.Expense.GroupID,
		Description: e.Expense.Description,
		Amount:      money.ToFloat(e.Expense.Amount),
		PayerShare:  money.ToFloat(e.PayerShare()),
		Kind:        e.Expense.Kind,
		SplitType:   e.Expense.SplitType,
		Date:        e.Expense.Date.Format(time.RFC3339),
		CreatedAt:   e.Expense.CreatedAt.Format(time.RFC3339),
	}
	for _, s := range e.Splits {
		resp.Splits = append(resp.Splits, &SplitResponse{
			ID:       s.ID,
			UserID:   s.UserID,
			UserName: s.UserName,
			Amount:   money.ToFloat(s.Amount),
			Settled:  s.Settled,
		})
	}
	return resp
}
