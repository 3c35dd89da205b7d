package tui

import (
	"testing"

	"suiwal/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestTotalBalance(t *testing.T) {
	m := model{
		accounts: []models.Account{
			{ID: "1", Balance: 1.5},
			{ID: "2", Balance: 2.25},
		},
	}

	assert.Equal(t, 3.75, m.totalBalance())

	m.accounts = nil
	assert.Equal(t, 0.0, m.totalBalance())
}

func TestBalanceOverviewSeries(t *testing.T) {
	m := model{
		accounts: []models.Account{
			{ID: "1", Balance: 10.0},
		},
	}

	series := m.balanceOverviewSeries()
	assert.Equal(t, len(balanceShape), len(series))
	assert.Equal(t, 10.0, series[len(series)-1])
	assert.Equal(t, 8.5, series[0])
}

func TestFilteredTransactions(t *testing.T) {
	m := model{
		txs: []models.Transaction{
			{Digest: "a", Type: models.TxSent},
			{Digest: "b", Type: models.TxReceived},
			{Digest: "c", Type: models.TxSent},
		},
	}

	m.txFilter = "all"
	assert.Equal(t, 3, len(m.filteredTransactions()))

	m.txFilter = models.TxSent
	txs := m.filteredTransactions()
	assert.Equal(t, 2, len(txs))
	assert.Equal(t, "a", txs[0].Digest)
	assert.Equal(t, "c", txs[1].Digest)

	m.txFilter = models.TxReceived
	txs = m.filteredTransactions()
	assert.Equal(t, 1, len(txs))
	assert.Equal(t, "b", txs[0].Digest)

	assert.Equal(t, 2, m.sentCount())
	assert.Equal(t, 1, m.receivedCount())
}
