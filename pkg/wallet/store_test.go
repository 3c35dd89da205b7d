package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"suiwal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	var accounts []models.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]models.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockService) ActiveAccount(ctx context.Context) (*models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockService) CreateAccount(ctx context.Context, nickname string) (*models.Account, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockService) SwitchAccount(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockService) SendTokens(ctx context.Context, fromID, toAddress string, amount float64) (json.RawMessage, error) {
	args := m.Called(ctx, fromID, toAddress, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockService) RequestFunds(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockService) Transactions(ctx context.Context, address string, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, address, limit)
	var txs []models.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]models.Transaction)
	}
	return txs, args.Error(1)
}

func newTestStore() (*Store, *MockService, *Bus) {
	mockSvc := new(MockService)
	bus := NewBus()
	return NewStore(mockSvc, bus), mockSvc, bus
}

func TestRefreshAccounts_ReplacesCollection(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	accounts := []models.Account{
		{ID: "a1", Nickname: "Main", Address: "0xabc", Balance: 5},
		{ID: "a2", Nickname: "Spare", Address: "0xdef", Balance: 1},
	}
	mockSvc.On("ListAccounts", mock.Anything).Return(accounts, nil)

	store.RefreshAccounts(context.Background())

	assert.Equal(t, accounts, store.Accounts())
	mockSvc.AssertExpectations(t)
}

func TestRefreshAccounts_KeepsPreviousOnFailure(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	accounts := []models.Account{{ID: "a1", Nickname: "Main"}}
	mockSvc.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()
	store.RefreshAccounts(context.Background())

	mockSvc.On("ListAccounts", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	store.RefreshAccounts(context.Background())

	assert.Equal(t, accounts, store.Accounts(), "failed refresh must keep the stale list")
}

func TestRefreshAccounts_DiscardsSuperseded(t *testing.T) {
	store, mockSvc, _ := newTestStore()

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	slow := []models.Account{{ID: "stale", Nickname: "Stale"}}
	fast := []models.Account{{ID: "fresh", Nickname: "Fresh"}}

	mockSvc.On("ListAccounts", mock.Anything).Return(slow, nil).Once().Run(func(mock.Arguments) {
		close(firstStarted)
		<-release
	})
	mockSvc.On("ListAccounts", mock.Anything).Return(fast, nil).Once()

	done := make(chan struct{})
	go func() {
		store.RefreshAccounts(context.Background())
		close(done)
	}()
	<-firstStarted

	// A newer refresh completes while the first is still in flight.
	store.RefreshAccounts(context.Background())
	assert.Equal(t, fast, store.Accounts())

	close(release)
	<-done
	assert.Equal(t, fast, store.Accounts(), "stale in-flight response must not overwrite a newer one")
}

func TestRefreshActive_MarksLoadedOnFailure(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	mockSvc.On("ActiveAccount", mock.Anything).Return(nil, errors.New("timeout"))

	assert.False(t, store.Loaded())
	store.RefreshActive(context.Background())

	assert.True(t, store.Loaded(), "a failed initial fetch must still complete the load")
	assert.Nil(t, store.Active())
}

func TestRefreshActive_KeepsPreviousOnFailure(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	active := &models.Account{ID: "a1", Nickname: "Main"}
	mockSvc.On("ActiveAccount", mock.Anything).Return(active, nil).Once()
	store.RefreshActive(context.Background())

	mockSvc.On("ActiveAccount", mock.Anything).Return(nil, errors.New("timeout")).Once()
	store.RefreshActive(context.Background())

	assert.NotNil(t, store.Active())
	assert.Equal(t, "a1", store.Active().ID)
}

func TestCreateAccount_ResyncsAndGrowsCollection(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	before := []models.Account{{ID: "a1", Nickname: "Main"}}
	mockSvc.On("ListAccounts", mock.Anything).Return(before, nil).Once()
	store.RefreshAccounts(context.Background())

	created := &models.Account{ID: "a2", Nickname: "Savings", Address: "0xdef"}
	after := append(append([]models.Account{}, before...), *created)
	mockSvc.On("CreateAccount", mock.Anything, "Savings").Return(created, nil)
	mockSvc.On("ListAccounts", mock.Anything).Return(after, nil).Once()
	mockSvc.On("ActiveAccount", mock.Anything).Return(created, nil)

	account, err := store.CreateAccount(context.Background(), "  Savings  ")
	assert.NoError(t, err)
	assert.Equal(t, "a2", account.ID)
	assert.Len(t, store.Accounts(), len(before)+1)
	assert.Equal(t, "Savings", store.Accounts()[1].Nickname)
	assert.Equal(t, "a2", store.Active().ID, "service may auto-activate the new account")
	mockSvc.AssertExpectations(t)
}

func TestCreateAccount_BlankNicknameDefaults(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	created := &models.Account{ID: "a1", Nickname: DefaultNickname}
	mockSvc.On("CreateAccount", mock.Anything, DefaultNickname).Return(created, nil)
	mockSvc.On("ListAccounts", mock.Anything).Return([]models.Account{*created}, nil)
	mockSvc.On("ActiveAccount", mock.Anything).Return(created, nil)

	_, err := store.CreateAccount(context.Background(), "   ")
	assert.NoError(t, err)
	mockSvc.AssertCalled(t, "CreateAccount", mock.Anything, DefaultNickname)
}

func TestCreateAccount_FailurePropagatesWithoutResync(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	mockSvc.On("CreateAccount", mock.Anything, "Savings").Return(nil, errors.New("keystore full"))

	_, err := store.CreateAccount(context.Background(), "Savings")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "keystore full")
	mockSvc.AssertNotCalled(t, "ListAccounts", mock.Anything)
	mockSvc.AssertNotCalled(t, "ActiveAccount", mock.Anything)
}

func TestSwitchAccount_SetsActiveFromResponse(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	target := &models.Account{ID: "a2", Nickname: "Spare", Balance: 3}
	mockSvc.On("SwitchAccount", mock.Anything, "a2").Return(target, nil)
	mockSvc.On("ListAccounts", mock.Anything).Return([]models.Account{*target}, nil)

	account, err := store.SwitchAccount(context.Background(), "a2")
	assert.NoError(t, err)
	assert.Equal(t, "a2", account.ID)
	assert.Equal(t, "a2", store.Active().ID)
	// The active pointer comes straight from the switch response.
	mockSvc.AssertNotCalled(t, "ActiveAccount", mock.Anything)
}

func TestSwitchAccount_FailureLeavesStateUnchanged(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	active := &models.Account{ID: "a1", Nickname: "Main"}
	mockSvc.On("ActiveAccount", mock.Anything).Return(active, nil).Once()
	store.RefreshActive(context.Background())

	mockSvc.On("SwitchAccount", mock.Anything, "a2").Return(nil, errors.New("unknown account"))

	_, err := store.SwitchAccount(context.Background(), "a2")
	assert.Error(t, err)
	assert.Equal(t, "a1", store.Active().ID)
	mockSvc.AssertNotCalled(t, "ListAccounts", mock.Anything)
}

func TestDeleteAccount_ActiveNeverDangling(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	a1 := &models.Account{ID: "a1", Nickname: "Main"}
	mockSvc.On("ActiveAccount", mock.Anything).Return(a1, nil).Once()
	store.RefreshActive(context.Background())

	remaining := []models.Account{{ID: "a2", Nickname: "Spare"}}
	mockSvc.On("DeleteAccount", mock.Anything, "a1").Return(nil)
	mockSvc.On("ListAccounts", mock.Anything).Return(remaining, nil)
	mockSvc.On("ActiveAccount", mock.Anything).Return(&remaining[0], nil).Once()

	err := store.DeleteAccount(context.Background(), "a1")
	assert.NoError(t, err)
	active := store.Active()
	if assert.NotNil(t, active) {
		assert.NotEqual(t, "a1", active.ID, "deleted account must not stay active")
		assert.Equal(t, "a2", active.ID)
	}
}

func TestDeleteAccount_LastAccountLeavesNilActive(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	a1 := &models.Account{ID: "a1", Nickname: "Main"}
	mockSvc.On("ActiveAccount", mock.Anything).Return(a1, nil).Once()
	store.RefreshActive(context.Background())

	mockSvc.On("DeleteAccount", mock.Anything, "a1").Return(nil)
	mockSvc.On("ListAccounts", mock.Anything).Return([]models.Account{}, nil)
	mockSvc.On("ActiveAccount", mock.Anything).Return(nil, nil).Once()

	err := store.DeleteAccount(context.Background(), "a1")
	assert.NoError(t, err)
	assert.Nil(t, store.Active())
}

func TestDeleteAccount_FailurePropagates(t *testing.T) {
	store, mockSvc, _ := newTestStore()
	mockSvc.On("DeleteAccount", mock.Anything, "a1").Return(errors.New("not found"))

	err := store.DeleteAccount(context.Background(), "a1")
	assert.Error(t, err)
	mockSvc.AssertNotCalled(t, "ListAccounts", mock.Anything)
}

func TestStore_EventsPublished(t *testing.T) {
	store, mockSvc, bus := newTestStore()
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	accounts := []models.Account{{ID: "a1"}}
	mockSvc.On("ListAccounts", mock.Anything).Return(accounts, nil)
	mockSvc.On("ActiveAccount", mock.Anything).Return(&accounts[0], nil)

	store.Resync(context.Background())

	first := <-sub
	assert.Equal(t, EventAccountsUpdated, first.Type)
	second := <-sub
	assert.Equal(t, EventActiveUpdated, second.Type)
}
