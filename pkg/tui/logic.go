package tui

import (
	"suiwal/pkg/models"
	"suiwal/pkg/wallet"
)

// balanceShape sketches the dashboard chart: a fixed curve scaled to the
// total balance, ending at the current value.
var balanceShape = []float64{0.85, 0.9, 0.88, 0.95, 0.92, 0.98, 1.0}

func (m model) totalBalance() float64 {
	total := 0.0
	for _, acc := range m.accounts {
		total += acc.Balance
	}
	return total
}

func (m model) balanceOverviewSeries() []float64 {
	total := m.totalBalance()
	series := make([]float64, len(balanceShape))
	for i, f := range balanceShape {
		series[i] = total * f
	}
	return series
}

func (m model) filteredTransactions() []models.Transaction {
	return wallet.FilterByType(m.txs, m.txFilter)
}

func (m model) sentCount() int {
	return len(wallet.FilterByType(m.txs, models.TxSent))
}

func (m model) receivedCount() int {
	return len(wallet.FilterByType(m.txs, models.TxReceived))
}
