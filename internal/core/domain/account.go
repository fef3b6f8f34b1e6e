package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
)

// AccountType defines the kind of financial account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Credit     AccountType = "CREDIT"
	Investment AccountType = "INVESTMENT"
)

// AccountStatus is the lifecycle state of an account. Balance-mutating
// operations are only legal in a subset of states; see the operation methods
// below for the full transition table.
type AccountStatus string

const (
	AccountPending   AccountStatus = "PENDING"
	AccountActive    AccountStatus = "ACTIVE"
	AccountOverdrawn AccountStatus = "OVERDRAWN"
	AccountFrozen    AccountStatus = "FROZEN"
	AccountClosed    AccountStatus = "CLOSED" // terminal
)

// Account represents a financial account within the core domain.
// Balance is the authoritative running total; it is only ever mutated through
// the lifecycle operations defined on this type.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // FK -> users.user_id (NON-NULL)
	Name        string          `json:"name"`      // User-defined name
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"` // Signed; negative while overdrawn
	Status      AccountStatus   `json:"status"`
	AuditFields
}

// IsOperable reports whether balance-mutating operations are currently legal.
func (a *Account) IsOperable() bool {
	return a.Status == AccountActive || a.Status == AccountOverdrawn
}

// Activate moves a pending account into service. This is driven by the
// provisioning collaborator's verification decision, not by any balance check.
func (a *Account) Activate() error {
	if a.Status != AccountPending {
		return fmt.Errorf("%w: cannot activate account in status %s", apperrors.ErrValidation, a.Status)
	}
	a.Status = AccountActive
	return nil
}

// Deposit credits the account. A deposit that restores a negative balance to
// zero or above clears the overdrawn state.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if !a.IsOperable() {
		return fmt.Errorf("%w: cannot deposit to account in status %s", apperrors.ErrAccountNotOperable, a.Status)
	}
	a.Balance = a.Balance.Add(amount)
	if a.Status == AccountOverdrawn && !a.Balance.IsNegative() {
		a.Status = AccountActive
	}
	return nil
}

// Withdraw debits the account. A withdrawal is never rejected solely for
// insufficient funds: if it drives the balance below zero the debit is still
// applied and the account transitions to Overdrawn.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if !a.IsOperable() {
		return fmt.Errorf("%w: cannot withdraw from account in status %s", apperrors.ErrAccountNotOperable, a.Status)
	}
	a.Balance = a.Balance.Sub(amount)
	if a.Balance.IsNegative() {
		a.Status = AccountOverdrawn
	}
	return nil
}

// Freeze suspends the account. Freezing an already frozen account is an
// idempotent no-op.
func (a *Account) Freeze() error {
	switch a.Status {
	case AccountFrozen:
		return nil
	case AccountActive, AccountOverdrawn:
		a.Status = AccountFrozen
		return nil
	default:
		return fmt.Errorf("%w: cannot freeze account in status %s", apperrors.ErrAccountNotOperable, a.Status)
	}
}

// Unfreeze resumes a frozen account in Active regardless of the stored
// balance. It never re-derives Overdrawn here; a negative balance surfaces
// again on the next mutation attempt.
func (a *Account) Unfreeze() error {
	if a.Status != AccountFrozen {
		return fmt.Errorf("%w: cannot unfreeze account in status %s", apperrors.ErrValidation, a.Status)
	}
	a.Status = AccountActive
	return nil
}

// Close soft-deletes the account. Active and Overdrawn accounts must carry a
// zero balance; Frozen accounts may always be closed since their balance is
// reconciled externally first.
func (a *Account) Close() error {
	switch a.Status {
	case AccountFrozen:
		a.Status = AccountClosed
		return nil
	case AccountActive, AccountOverdrawn:
		if !a.Balance.IsZero() {
			return fmt.Errorf("%w: cannot close account with non-zero balance %s", apperrors.ErrValidation, a.Balance)
		}
		a.Status = AccountClosed
		return nil
	default:
		return fmt.Errorf("%w: cannot close account in status %s", apperrors.ErrAccountNotOperable, a.Status)
	}
}
