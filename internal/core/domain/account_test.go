package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

func newAccount(status domain.AccountStatus, balance string) *domain.Account {
	return &domain.Account{
		AccountID:   "acc_test",
		UserID:      "user_test",
		Name:        "Everyday",
		AccountType: domain.Checking,
		Balance:     decimal.RequireFromString(balance),
		Status:      status,
	}
}

func TestAccount_Activate(t *testing.T) {
	acc := newAccount(domain.AccountPending, "0")
	require.NoError(t, acc.Activate())
	assert.Equal(t, domain.AccountActive, acc.Status)

	// Only pending accounts can be activated.
	assert.ErrorIs(t, acc.Activate(), apperrors.ErrValidation)
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		account     *domain.Account
		amount      string
		wantErr     error
		wantBalance string
		wantStatus  domain.AccountStatus
	}{
		{
			name:        "deposit to active account",
			account:     newAccount(domain.AccountActive, "100.00"),
			amount:      "25.50",
			wantBalance: "125.50",
			wantStatus:  domain.AccountActive,
		},
		{
			name:        "deposit clears overdrawn state",
			account:     newAccount(domain.AccountOverdrawn, "-40.00"),
			amount:      "40.00",
			wantBalance: "0.00",
			wantStatus:  domain.AccountActive,
		},
		{
			name:        "partial deposit stays overdrawn",
			account:     newAccount(domain.AccountOverdrawn, "-40.00"),
			amount:      "10.00",
			wantBalance: "-30.00",
			wantStatus:  domain.AccountOverdrawn,
		},
		{
			name:        "deposit to frozen account fails",
			account:     newAccount(domain.AccountFrozen, "100.00"),
			amount:      "10.00",
			wantErr:     apperrors.ErrAccountNotOperable,
			wantBalance: "100.00",
			wantStatus:  domain.AccountFrozen,
		},
		{
			name:        "deposit to closed account fails",
			account:     newAccount(domain.AccountClosed, "0"),
			amount:      "10.00",
			wantErr:     apperrors.ErrAccountNotOperable,
			wantBalance: "0",
			wantStatus:  domain.AccountClosed,
		},
		{
			name:        "deposit to pending account fails",
			account:     newAccount(domain.AccountPending, "0"),
			amount:      "10.00",
			wantErr:     apperrors.ErrAccountNotOperable,
			wantBalance: "0",
			wantStatus:  domain.AccountPending,
		},
		{
			name:        "non-positive deposit fails",
			account:     newAccount(domain.AccountActive, "100.00"),
			amount:      "0",
			wantErr:     apperrors.ErrInvalidAmount,
			wantBalance: "100.00",
			wantStatus:  domain.AccountActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Deposit(decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, tt.account.Balance.Equal(decimal.RequireFromString(tt.wantBalance)),
				"balance = %s, want %s", tt.account.Balance, tt.wantBalance)
			assert.Equal(t, tt.wantStatus, tt.account.Status)
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		account     *domain.Account
		amount      string
		wantErr     error
		wantBalance string
		wantStatus  domain.AccountStatus
	}{
		{
			name:        "normal withdrawal",
			account:     newAccount(domain.AccountActive, "100.00"),
			amount:      "30.00",
			wantBalance: "70.00",
			wantStatus:  domain.AccountActive,
		},
		{
			name:        "withdrawal into overdraft is applied",
			account:     newAccount(domain.AccountActive, "20.00"),
			amount:      "50.00",
			wantBalance: "-30.00",
			wantStatus:  domain.AccountOverdrawn,
		},
		{
			name:        "withdrawal while already overdrawn",
			account:     newAccount(domain.AccountOverdrawn, "-10.00"),
			amount:      "5.00",
			wantBalance: "-15.00",
			wantStatus:  domain.AccountOverdrawn,
		},
		{
			name:        "withdrawal to exactly zero stays active",
			account:     newAccount(domain.AccountActive, "50.00"),
			amount:      "50.00",
			wantBalance: "0.00",
			wantStatus:  domain.AccountActive,
		},
		{
			name:        "withdrawal from frozen account fails without mutation",
			account:     newAccount(domain.AccountFrozen, "100.00"),
			amount:      "10.00",
			wantErr:     apperrors.ErrAccountNotOperable,
			wantBalance: "100.00",
			wantStatus:  domain.AccountFrozen,
		},
		{
			name:        "negative withdrawal fails",
			account:     newAccount(domain.AccountActive, "100.00"),
			amount:      "-5.00",
			wantErr:     apperrors.ErrInvalidAmount,
			wantBalance: "100.00",
			wantStatus:  domain.AccountActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Withdraw(decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, tt.account.Balance.Equal(decimal.RequireFromString(tt.wantBalance)),
				"balance = %s, want %s", tt.account.Balance, tt.wantBalance)
			assert.Equal(t, tt.wantStatus, tt.account.Status)
		})
	}
}

func TestAccount_FreezeUnfreeze(t *testing.T) {
	acc := newAccount(domain.AccountActive, "100.00")

	require.NoError(t, acc.Freeze())
	assert.Equal(t, domain.AccountFrozen, acc.Status)

	// Freeze is idempotent on an already frozen account.
	require.NoError(t, acc.Freeze())
	assert.Equal(t, domain.AccountFrozen, acc.Status)

	require.NoError(t, acc.Unfreeze())
	assert.Equal(t, domain.AccountActive, acc.Status)

	// Unfreeze only applies to frozen accounts.
	assert.ErrorIs(t, acc.Unfreeze(), apperrors.ErrValidation)
}

func TestAccount_Unfreeze_DoesNotRederiveOverdrawn(t *testing.T) {
	// Unfreezing resumes in Active even with a negative stored balance; the
	// overdrawn state re-derives on the next mutation.
	acc := newAccount(domain.AccountFrozen, "-25.00")
	require.NoError(t, acc.Unfreeze())
	assert.Equal(t, domain.AccountActive, acc.Status)

	require.NoError(t, acc.Withdraw(decimal.RequireFromString("1.00")))
	assert.Equal(t, domain.AccountOverdrawn, acc.Status)
}

func TestAccount_Close(t *testing.T) {
	t.Run("active with zero balance", func(t *testing.T) {
		acc := newAccount(domain.AccountActive, "0")
		require.NoError(t, acc.Close())
		assert.Equal(t, domain.AccountClosed, acc.Status)
	})

	t.Run("active with non-zero balance fails", func(t *testing.T) {
		acc := newAccount(domain.AccountActive, "12.00")
		assert.ErrorIs(t, acc.Close(), apperrors.ErrValidation)
		assert.Equal(t, domain.AccountActive, acc.Status)
	})

	t.Run("overdrawn with debt fails", func(t *testing.T) {
		acc := newAccount(domain.AccountOverdrawn, "-5.00")
		assert.ErrorIs(t, acc.Close(), apperrors.ErrValidation)
	})

	t.Run("frozen always closes", func(t *testing.T) {
		acc := newAccount(domain.AccountFrozen, "-5.00")
		require.NoError(t, acc.Close())
		assert.Equal(t, domain.AccountClosed, acc.Status)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		acc := newAccount(domain.AccountClosed, "0")
		assert.ErrorIs(t, acc.Close(), apperrors.ErrAccountNotOperable)
	})
}
