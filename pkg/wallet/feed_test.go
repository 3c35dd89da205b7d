package wallet

import (
	"context"
	"errors"
	"testing"

	"suiwal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestFeed(limit int) (*Feed, *MockService) {
	mockSvc := new(MockService)
	return NewFeed(mockSvc, NewBus(), limit), mockSvc
}

func TestFeed_RefreshAppliesResults(t *testing.T) {
	feed, mockSvc := newTestFeed(50)
	txs := []models.Transaction{
		{Digest: "0x1", Type: models.TxSent, Status: "success"},
		{Digest: "0x2", Type: models.TxReceived, Status: "success"},
	}
	mockSvc.On("Transactions", mock.Anything, "0xabc", 50).Return(txs, nil)

	feed.SetAddress("0xabc")
	feed.Refresh(context.Background())

	assert.Equal(t, txs, feed.Transactions())
}

func TestFeed_NoAddressNoFetch(t *testing.T) {
	feed, mockSvc := newTestFeed(50)

	feed.Refresh(context.Background())

	assert.Empty(t, feed.Transactions())
	mockSvc.AssertNotCalled(t, "Transactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeed_FailureKeepsPriorList(t *testing.T) {
	feed, mockSvc := newTestFeed(50)
	txs := []models.Transaction{{Digest: "0x1", Type: models.TxSent}}
	mockSvc.On("Transactions", mock.Anything, "0xabc", 50).Return(txs, nil).Once()

	feed.SetAddress("0xabc")
	feed.Refresh(context.Background())

	mockSvc.On("Transactions", mock.Anything, "0xabc", 50).Return(nil, errors.New("timeout")).Once()
	feed.Refresh(context.Background())

	assert.Equal(t, txs, feed.Transactions(), "history failures are best-effort")
}

func TestFeed_SetAddressClearsList(t *testing.T) {
	feed, mockSvc := newTestFeed(50)
	mockSvc.On("Transactions", mock.Anything, "0xaaa", 50).Return([]models.Transaction{{Digest: "0x1"}}, nil)

	feed.SetAddress("0xaaa")
	feed.Refresh(context.Background())
	assert.Len(t, feed.Transactions(), 1)

	feed.SetAddress("0xbbb")
	assert.Empty(t, feed.Transactions(), "stale results must never show against a new address")
	assert.Equal(t, "0xbbb", feed.Address())
}

func TestFeed_InFlightResultForOldAddressDiscarded(t *testing.T) {
	feed, mockSvc := newTestFeed(50)

	fetchStarted := make(chan struct{})
	release := make(chan struct{})
	oldTxs := []models.Transaction{{Digest: "old", Type: models.TxSent}}
	newTxs := []models.Transaction{{Digest: "new", Type: models.TxReceived}}

	mockSvc.On("Transactions", mock.Anything, "0xaaa", 50).Return(oldTxs, nil).Once().Run(func(mock.Arguments) {
		close(fetchStarted)
		<-release
	})
	mockSvc.On("Transactions", mock.Anything, "0xbbb", 50).Return(newTxs, nil).Once()

	feed.SetAddress("0xaaa")
	done := make(chan struct{})
	go func() {
		feed.Refresh(context.Background())
		close(done)
	}()
	<-fetchStarted

	// Switch accounts while the old fetch is still pending.
	feed.SetAddress("0xbbb")
	feed.Refresh(context.Background())
	assert.Equal(t, newTxs, feed.Transactions())

	close(release)
	<-done
	assert.Equal(t, newTxs, feed.Transactions(), "a resolve for the previous address must not overwrite the list")
}

func TestFilterByType(t *testing.T) {
	txs := []models.Transaction{
		{Digest: "0x1", Type: models.TxSent},
		{Digest: "0x2", Type: models.TxReceived},
		{Digest: "0x3", Type: models.TxSent},
		{Digest: "0x4", Type: models.TxReceived},
	}

	all := FilterByType(txs, "all")
	assert.Equal(t, txs, all, `"all" is the identity transform`)

	sent := FilterByType(txs, models.TxSent)
	assert.Len(t, sent, 2)
	assert.Equal(t, "0x1", sent[0].Digest)
	assert.Equal(t, "0x3", sent[1].Digest)

	received := FilterByType(txs, models.TxReceived)
	assert.Len(t, received, 2)
	assert.Equal(t, "0x2", received[0].Digest)
	assert.Equal(t, "0x4", received[1].Digest)
}

func TestFilterByType_EdgeCases(t *testing.T) {
	assert.Empty(t, FilterByType(nil, models.TxSent))
	assert.Empty(t, FilterByType([]models.Transaction{}, "all"))

	allSent := []models.Transaction{
		{Digest: "0x1", Type: models.TxSent},
		{Digest: "0x2", Type: models.TxSent},
	}
	assert.Equal(t, allSent, FilterByType(allSent, models.TxSent))
	assert.Empty(t, FilterByType(allSent, models.TxReceived))
}
