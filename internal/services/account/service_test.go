package account

import (
	"context"
	"fmt"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID uint = 5

type fakeAccounts struct {
	repositories.AccountRepository

	byName map[string]*models.Account
	nextID int
}

func newFakeAccounts(existing ...*models.Account) *fakeAccounts {
	f := &fakeAccounts{byName: make(map[string]*models.Account)}
	for _, a := range existing {
		f.nextID++
		if a.ID == "" {
			a.ID = fmt.Sprintf("acc-%d", f.nextID)
		}
		f.byName[a.AccountName] = a
	}
	return f
}

func (f *fakeAccounts) Create(account *models.Account) error {
	if _, ok := f.byName[account.AccountName]; ok {
		return repositories.ErrDuplicateKey
	}
	f.nextID++
	account.ID = fmt.Sprintf("acc-%d", f.nextID)
	f.byName[account.AccountName] = account
	return nil
}

func (f *fakeAccounts) CreateMany(accounts []*models.Account) error {
	for _, a := range accounts {
		if err := f.Create(a); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAccounts) ListByUser(userID uint) ([]models.Account, error) {
	var out []models.Account
	for _, a := range f.byName {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccounts) Upsert(account *models.Account) error {
	if existing, ok := f.byName[account.AccountName]; ok {
		existing.AccountLogo = account.AccountLogo
		existing.Amount = account.Amount
		return nil
	}
	return f.Create(account)
}

func (f *fakeAccounts) DeleteMany(userID uint, ids []string) error {
	for _, id := range ids {
		for name, a := range f.byName {
			if a.ID == id {
				delete(f.byName, name)
			}
		}
	}
	return nil
}

func (f *fakeAccounts) ExecuteInTransaction(fn func(repositories.AccountRepository) error) error {
	return fn(f)
}

type fakeCache struct {
	deletedKeys []string
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.deletedKeys = append(f.deletedKeys, keys...)
	return nil
}

func TestCreateAccount(t *testing.T) {
	accounts := newFakeAccounts()
	cache := &fakeCache{}
	svc := NewService(accounts, cache)

	created, err := svc.Create(context.Background(), testUserID, NewAccount{Name: "Checking", Logo: "🏦", Amount: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Checking", created.AccountName)
	assert.NotEmpty(t, cache.deletedKeys)
}

func TestCreateDuplicateName(t *testing.T) {
	accounts := newFakeAccounts(&models.Account{UserID: testUserID, AccountName: "Checking"})
	svc := NewService(accounts, &fakeCache{})

	_, err := svc.Create(context.Background(), testUserID, NewAccount{Name: "Checking"})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestCreateBlankName(t *testing.T) {
	svc := NewService(newFakeAccounts(), &fakeCache{})

	_, err := svc.Create(context.Background(), testUserID, NewAccount{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestBulkAddReturnsFullSet(t *testing.T) {
	accounts := newFakeAccounts(&models.Account{UserID: testUserID, AccountName: "Checking"})
	svc := NewService(accounts, &fakeCache{})

	all, err := svc.BulkAdd(context.Background(), testUserID, []NewAccount{
		{Name: "Savings", Amount: 200},
		{Name: "Cash"},
	})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBulkAddEmpty(t *testing.T) {
	svc := NewService(newFakeAccounts(), &fakeCache{})

	_, err := svc.BulkAdd(context.Background(), testUserID, nil)
	assert.ErrorIs(t, err, ErrNothingToCreate)
}

func TestUpsertSelectionSyncsToSubmission(t *testing.T) {
	accounts := newFakeAccounts(
		&models.Account{UserID: testUserID, AccountName: "Checking", Amount: 100},
		&models.Account{UserID: testUserID, AccountName: "Old Bank", Amount: 30},
	)
	cache := &fakeCache{}
	svc := NewService(accounts, cache)

	all, err := svc.UpsertSelection(context.Background(), testUserID, []NewAccount{
		{Name: "Checking", Logo: "🏦", Amount: 100},
		{Name: "Savings", Amount: 0},
	})
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, hasOld := accounts.byName["Old Bank"]
	assert.False(t, hasOld)
	assert.Equal(t, "🏦", accounts.byName["Checking"].AccountLogo)
	assert.Contains(t, accounts.byName, "Savings")
	assert.NotEmpty(t, cache.deletedKeys)
}
