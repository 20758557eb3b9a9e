package split

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sumAllocations(r *Result) decimal.Decimal {
	sum := r.PayerShare
	for _, a := range r.Allocations {
		sum = sum.Add(a.Amount)
	}
	return sum
}

func TestEqualAllocate(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		participants []Participant
		wantShares   []string
		wantPayer    string
	}{
		{
			name:         "even division",
			total:        "90.00",
			participants: []Participant{{UserID: 2}, {UserID: 3}},
			wantShares:   []string{"30.00", "30.00"},
			wantPayer:    "30.00",
		},
		{
			name:         "remainder lands on last participant",
			total:        "100.00",
			participants: []Participant{{UserID: 2}, {UserID: 3}},
			wantShares:   []string{"33.33", "33.34"},
			wantPayer:    "33.33",
		},
		{
			name:         "single participant",
			total:        "25.50",
			participants: []Participant{{UserID: 2}},
			wantShares:   []string{"12.75"},
			wantPayer:    "12.75",
		},
		{
			name:         "sub cent total",
			total:        "0.05",
			participants: []Participant{{UserID: 2}, {UserID: 3}},
			wantShares:   []string{"0.02", "0.01"},
			wantPayer:    "0.02",
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := strategy.Allocate(dec(tt.total), 1, tt.participants)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}

			if got := result.PayerShare; !got.Equal(dec(tt.wantPayer)) {
				t.Errorf("payer share = %s, want %s", got, tt.wantPayer)
			}
			for i, want := range tt.wantShares {
				if got := result.Allocations[i].Amount; !got.Equal(dec(want)) {
					t.Errorf("allocation[%d] = %s, want %s", i, got, want)
				}
			}
			if sum := sumAllocations(result); !sum.Equal(dec(tt.total)) {
				t.Errorf("shares sum to %s, want %s", sum, tt.total)
			}
		})
	}
}

func TestEqualAllocateDeterministic(t *testing.T) {
	strategy := &EqualStrategy{}
	participants := []Participant{{UserID: 2}, {UserID: 3}, {UserID: 4}}

	first, err := strategy.Allocate(dec("100.00"), 1, participants)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := strategy.Allocate(dec("100.00"), 1, participants)
		if err != nil {
			t.Fatalf("Allocate() error = %v", err)
		}
		for j := range first.Allocations {
			if !again.Allocations[j].Amount.Equal(first.Allocations[j].Amount) {
				t.Fatalf("run %d allocation[%d] = %s, first run gave %s",
					i, j, again.Allocations[j].Amount, first.Allocations[j].Amount)
			}
		}
	}
}

func TestExactAllocate(t *testing.T) {
	strategy := &ExactStrategy{}

	result, err := strategy.Allocate(dec("100.00"), 1, []Participant{
		{UserID: 2, Amount: decPtr("40.00")},
		{UserID: 3, Amount: decPtr("35.50")},
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	if !result.PayerShare.Equal(dec("24.50")) {
		t.Errorf("payer share = %s, want 24.50", result.PayerShare)
	}
	if sum := sumAllocations(result); !sum.Equal(dec("100.00")) {
		t.Errorf("shares sum to %s, want 100.00", sum)
	}
}

func TestExactAllocateFullTotal(t *testing.T) {
	strategy := &ExactStrategy{}

	result, err := strategy.Allocate(dec("50.00"), 1, []Participant{
		{UserID: 2, Amount: decPtr("50.00")},
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if !result.PayerShare.IsZero() {
		t.Errorf("payer share = %s, want 0", result.PayerShare)
	}
}

func TestPercentageAllocate(t *testing.T) {
	strategy := &PercentageStrategy{}

	result, err := strategy.Allocate(dec("100.00"), 1, []Participant{
		{UserID: 2, Percentage: decPtr("33.33")},
		{UserID: 3, Percentage: decPtr("33.33")},
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	if !result.Allocations[0].Amount.Equal(dec("33.33")) {
		t.Errorf("allocation[0] = %s, want 33.33", result.Allocations[0].Amount)
	}
	if !result.Allocations[1].Amount.Equal(dec("33.33")) {
		t.Errorf("allocation[1] = %s, want 33.33", result.Allocations[1].Amount)
	}
	if !result.PayerShare.Equal(dec("33.34")) {
		t.Errorf("payer share = %s, want 33.34", result.PayerShare)
	}
	if sum := sumAllocations(result); !sum.Equal(dec("100.00")) {
		t.Errorf("shares sum to %s, want 100.00", sum)
	}
}

func TestPercentageAllocateRoundingDrift(t *testing.T) {
	strategy := &PercentageStrategy{}

	// Three thirds of $0.10 each round to $0.03; the last participant
	// absorbs the drift so the amounts reconstruct the expected sum.
	result, err := strategy.Allocate(dec("0.10"), 1, []Participant{
		{UserID: 2, Percentage: decPtr("33.33")},
		{UserID: 3, Percentage: decPtr("33.33")},
		{UserID: 4, Percentage: decPtr("33.34")},
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if sum := sumAllocations(result); !sum.Equal(dec("0.10")) {
		t.Errorf("shares sum to %s, want 0.10", sum)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name         string
		strategy     Strategy
		total        string
		payerID      int64
		participants []Participant
		wantCode     string
	}{
		{
			name:     "zero total",
			strategy: &EqualStrategy{},
			total:    "0",
			payerID:  1,
			participants: []Participant{
				{UserID: 2},
			},
			wantCode: CodeInvalidAmount,
		},
		{
			name:         "no participants",
			strategy:     &EqualStrategy{},
			total:        "10.00",
			payerID:      1,
			participants: nil,
			wantCode:     CodeNoParticipants,
		},
		{
			name:     "payer listed as participant",
			strategy: &EqualStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 1},
			},
			wantCode: CodePayerIsParticipant,
		},
		{
			name:     "duplicate participant",
			strategy: &EqualStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 2},
				{UserID: 2},
			},
			wantCode: CodeDuplicateParticipant,
		},
		{
			name:     "exact missing amount",
			strategy: &ExactStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 2},
			},
			wantCode: CodeMissingAmount,
		},
		{
			name:     "exact amounts exceed total",
			strategy: &ExactStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 2, Amount: decPtr("6.00")},
				{UserID: 3, Amount: decPtr("6.00")},
			},
			wantCode: CodeAmountMismatch,
		},
		{
			name:     "percentage missing",
			strategy: &PercentageStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 2},
			},
			wantCode: CodeMissingPercentage,
		},
		{
			name:     "percentage out of range",
			strategy: &PercentageStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 2, Percentage: decPtr("101")},
			},
			wantCode: CodePercentageOutOfRange,
		},
		{
			name:     "percentages exceed 100",
			strategy: &PercentageStrategy{},
			total:    "10.00",
			payerID:  1,
			participants: []Participant{
				{UserID: 2, Percentage: decPtr("60")},
				{UserID: 3, Percentage: decPtr("60")},
			},
			wantCode: CodePercentageMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.strategy.Allocate(dec(tt.total), tt.payerID, tt.participants)
			if err == nil {
				t.Fatal("Allocate() succeeded, want validation error")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Allocate() error = %T, want *ValidationError", err)
			}
			if vErr.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", vErr.Code, tt.wantCode)
			}
		})
	}
}

func TestMismatchErrorDetails(t *testing.T) {
	strategy := &ExactStrategy{}
	_, err := strategy.Allocate(dec("10.00"), 1, []Participant{
		{UserID: 2, Amount: decPtr("7.00")},
		{UserID: 3, Amount: decPtr("7.00")},
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Allocate() error = %T, want *ValidationError", err)
	}
	if vErr.Expected != "10.00" {
		t.Errorf("expected = %q, want %q", vErr.Expected, "10.00")
	}
	if vErr.Actual != "14.00" {
		t.Errorf("actual = %q, want %q", vErr.Actual, "14.00")
	}
	if want := "participant amounts exceed the total amount (expected 10.00, got 14.00)"; vErr.Error() != want {
		t.Errorf("Error() = %q, want %q", vErr.Error(), want)
	}
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	for _, typ := range []Type{TypeEqual, TypeExact, TypePercentage} {
		strategy, err := factory.Create(typ)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", typ, err)
		}
		if strategy.Type() != typ {
			t.Errorf("Create(%s) returned strategy of type %s", typ, strategy.Type())
		}
	}

	if _, err := factory.CreateFromString("UNKNOWN"); err == nil {
		t.Error("CreateFromString(UNKNOWN) succeeded, want error")
	}
}
