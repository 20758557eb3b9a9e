package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/internal/expense/split"
	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// Kind distinguishes personal expenses from shared ones.
type Kind string

const (
	// KindSolo is a personal expense: no splits, the payer bears everything.
	KindSolo Kind = "SOLO"
	// KindSplit is a shared expense with one split per participant.
	KindSplit Kind = "SPLIT"
)

// Expense represents one monetary event. For KindSplit the payer's own share
// is never stored; it is derived as Amount minus the sum of the splits.
type Expense struct {
	ID          int64           `json:"id"`
	PayerID     int64           `json:"payer_id"`
	GroupID     *int64          `json:"group_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        Kind            `json:"kind"`
	SplitType   *string         `json:"split_type,omitempty"` // EQUAL, EXACT, PERCENTAGE; nil for SOLO
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split is one participant's obligation on a split expense. The payer never
// has a Split row.
type Split struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Settled   bool            `json:"settled"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits.
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// PayerShare derives the payer's implicit share: the amount minus everything
// the participants owe.
func (e *ExpenseWithSplits) PayerShare() decimal.Decimal {
	share := e.Expense.Amount
	for _, s := range e.Splits {
		share = share.Sub(s.Amount)
	}
	return share
}

// ParticipantInput is one participant as submitted by the client.
type ParticipantInput struct {
	UserID     int64    `json:"user_id"`
	Amount     *float64 `json:"amount,omitempty"`     // For EXACT splits
	Percentage *float64 `json:"percentage,omitempty"` // For PERCENTAGE splits
}

// ToSplitParticipant converts to the split package's input type.
func (p *ParticipantInput) ToSplitParticipant() split.Participant {
	out := split.Participant{UserID: p.UserID}
	if p.Amount != nil {
		amount := money.FromFloat(*p.Amount)
		out.Amount = &amount
	}
	if p.Percentage != nil {
		pct := decimal.NewFromFloat(*p.Percentage)
		out.Percentage = &pct
	}
	return out
}
