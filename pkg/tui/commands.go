package tui

import (
	"context"
	"time"

	"suiwal/pkg/wallet"

	tea "github.com/charmbracelet/bubbletea"
)

func listenForWallet(sub wallet.Subscriber) tea.Cmd {
	return func() tea.Msg {
		return walletEventMsg(<-sub)
	}
}

func (m model) initialLoadCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.Resync(context.Background())
		return initialLoadMsg{}
	}
}

func (m model) resyncCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.Resync(context.Background())
		return resyncDoneMsg{}
	}
}

func (m model) refreshHistoryCmd() tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		feed.Refresh(context.Background())
		return historyRefreshedMsg{}
	}
}

func (m model) createAccountCmd(nickname string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		account, err := store.CreateAccount(context.Background(), nickname)
		return createResultMsg{account: account, err: err}
	}
}

func (m model) switchAccountCmd(accountID string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		_, err := store.SwitchAccount(context.Background(), accountID)
		return switchResultMsg{err: err}
	}
}

func (m model) deleteAccountCmd(accountID string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return deleteResultMsg{err: store.DeleteAccount(context.Background(), accountID)}
	}
}

func (m model) sendTokensCmd(toAddress, amount string) tea.Cmd {
	transfer := m.transfer
	return func() tea.Msg {
		return sendResultMsg(transfer.SendTokens(context.Background(), toAddress, amount))
	}
}

func (m model) requestFundsCmd(address string) tea.Cmd {
	faucet := m.faucet
	return func() tea.Msg {
		return faucetResultMsg(faucet.RequestFunds(context.Background(), address))
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// clearFaucetAfter dismisses transient faucet notices. Rate-limit
// notices ignore it; they clear only when the countdown expires.
func clearFaucetAfter(seconds int) tea.Cmd {
	return tea.Tick(time.Duration(seconds)*time.Second, func(time.Time) tea.Msg { return clearFaucetMsg{} })
}
