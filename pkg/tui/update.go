package tui

import (
	"fmt"
	"strings"
	"time"

	"suiwal/pkg/models"
	"suiwal/pkg/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case walletEventMsg:
		// Re-subscribe to the next event
		cmds = append(cmds, listenForWallet(m.sub))
		cmds = append(cmds, m.applyEvent(wallet.Event(msg))...)

	case initialLoadMsg:
		m.loading = false

	case resyncDoneMsg, historyRefreshedMsg:
		m.refreshing = false

	case createResultMsg:
		m.accountsBusy = false
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Failed to create account: %v", msg.err)
		} else {
			m.creating = false
			m.nicknameInput.SetValue("")
			m.nicknameInput.Blur()
			m.statusMessage = fmt.Sprintf("Account %q created", msg.account.Nickname)
		}
		cmds = append(cmds, clearStatusAfter(3*time.Second))

	case switchResultMsg:
		m.accountsBusy = false
		if msg.err != nil {
			// Non-fatal: switching is always retryable.
			m.statusMessage = "Switch failed, try again"
		} else {
			m.statusMessage = "Switched account"
		}
		cmds = append(cmds, clearStatusAfter(2*time.Second))

	case deleteResultMsg:
		m.accountsBusy = false
		m.confirmDelete = false
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Failed to delete account: %v", msg.err)
		} else {
			m.statusMessage = "Account deleted"
		}
		cmds = append(cmds, clearStatusAfter(3*time.Second))

	case sendResultMsg:
		m.sending = false
		if msg.Err != nil {
			m.sendError = msg.Err.Error()
		} else {
			m.sendSuccess = fmt.Sprintf("Successfully sent %s!", strings.TrimSpace(m.sendInputs[1].Value()))
			m.sendInputs[0].SetValue("")
			m.sendInputs[1].SetValue("")
			cmds = append(cmds, m.refreshHistoryCmd())
		}

	case faucetResultMsg:
		m.requestingFunds = false
		result := models.FaucetResult(msg)
		switch result.Outcome {
		case models.FaucetOK:
			m.faucetMessage = result.Message
			m.faucetMsgType = "success"
			cmds = append(cmds, m.refreshHistoryCmd(), clearFaucetAfter(m.cfg.FaucetNoticeSeconds))
		case models.FaucetRateLimited:
			m.cooldown = result.RetryAfter
			m.faucetMessage = result.Message
			m.faucetMsgType = "rate-limit"
			// Cleared by the countdown, not by a timer.
		case models.FaucetFailed:
			m.faucetMessage = result.Message
			m.faucetMsgType = "error"
			cmds = append(cmds, clearFaucetAfter(m.cfg.FaucetNoticeSeconds))
		}

	case clearStatusMsg:
		m.statusMessage = ""

	case clearFaucetMsg:
		if m.faucetMsgType != "rate-limit" {
			m.faucetMessage = ""
			m.faucetMsgType = ""
		}

	case tea.KeyMsg:
		m, cmds = m.handleKey(msg, cmds)
		return m, tea.Batch(cmds...)
	}

	if m.loading || m.sending || m.requestingFunds || m.accountsBusy || m.refreshing {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) applyEvent(event wallet.Event) []tea.Cmd {
	var cmds []tea.Cmd

	switch event.Type {
	case wallet.EventAccountsUpdated:
		if accounts, ok := event.Data.([]models.Account); ok {
			m.accounts = accounts
			if m.accountIdx >= len(m.accounts) {
				m.accountIdx = len(m.accounts) - 1
			}
			if m.accountIdx < 0 {
				m.accountIdx = 0
			}
		}

	case wallet.EventActiveUpdated:
		previous := ""
		if m.active != nil {
			previous = m.active.Address
		}
		account, _ := event.Data.(*models.Account)
		m.active = account
		if m.store.Loaded() {
			m.loading = false
		}
		switch {
		case account == nil:
			m.feed.SetAddress("")
		case account.Address != previous:
			// History is keyed to the active address; retarget and refetch.
			m.feed.SetAddress(account.Address)
			m.txIdx = 0
			cmds = append(cmds, m.refreshHistoryCmd())
		}

	case wallet.EventTransactionsUpdated:
		if data, ok := event.Data.(wallet.TransactionsData); ok {
			m.txs = data.Transactions
			if m.txIdx >= len(m.txs) {
				m.txIdx = 0
			}
		}

	case wallet.EventCooldownTick:
		if remaining, ok := event.Data.(int); ok {
			m.cooldown = remaining
		}

	case wallet.EventCooldownExpired:
		m.cooldown = 0
		if m.faucetMsgType == "rate-limit" {
			m.faucetMessage = ""
			m.faucetMsgType = ""
		}
	}

	return cmds
}

func (m model) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (model, []tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, append(cmds, tea.Quit)
	}

	if m.confirmDelete {
		switch key {
		case "y", "Y", "enter":
			if len(m.accounts) > 0 && !m.accountsBusy {
				m.accountsBusy = true
				cmds = append(cmds, m.deleteAccountCmd(m.accounts[m.accountIdx].ID))
			}
		case "n", "N", "q", "esc":
			m.confirmDelete = false
		}
		return m, cmds
	}

	if m.creating {
		switch key {
		case "enter":
			if !m.accountsBusy {
				m.accountsBusy = true
				cmds = append(cmds, m.createAccountCmd(m.nicknameInput.Value()))
			}
		case "esc":
			m.creating = false
			m.nicknameInput.SetValue("")
			m.nicknameInput.Blur()
		default:
			var cmd tea.Cmd
			m.nicknameInput, cmd = m.nicknameInput.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, cmds
	}

	if m.view == viewSend {
		return m.handleSendKey(msg, cmds)
	}

	switch key {
	case "q":
		return m, append(cmds, tea.Quit)
	case "1":
		m.view = viewDashboard
	case "2":
		m.view = viewAccounts
	case "3":
		m.view = viewSend
		m.sendFocus = 0
		m.sendInputs[0].Focus()
		m.sendInputs[1].Blur()
	case "4":
		m.view = viewHistory
	case "tab":
		m.view = (m.view + 1) % 4
		if m.view == viewSend {
			m.sendFocus = 0
			m.sendInputs[0].Focus()
			m.sendInputs[1].Blur()
		}
	case "r":
		m.refreshing = true
		m.statusMessage = "Refreshing..."
		cmds = append(cmds, m.resyncCmd(), m.refreshHistoryCmd(), clearStatusAfter(2*time.Second))
	}

	switch m.view {
	case viewDashboard:
		m, cmds = m.handleDashboardKey(key, cmds)
	case viewAccounts:
		m, cmds = m.handleAccountsKey(key, cmds)
	case viewHistory:
		m, cmds = m.handleHistoryKey(key, cmds)
	}

	return m, cmds
}

func (m model) handleDashboardKey(key string, cmds []tea.Cmd) (model, []tea.Cmd) {
	switch key {
	case "f":
		if m.active != nil && !m.requestingFunds && m.cooldown == 0 {
			m.requestingFunds = true
			m.faucetMessage = ""
			m.faucetMsgType = ""
			cmds = append(cmds, m.requestFundsCmd(m.active.Address))
		}
	case "c":
		if m.active != nil {
			if err := clipboard.WriteAll(m.active.Address); err != nil {
				m.statusMessage = "Failed to copy to clipboard"
			} else {
				m.statusMessage = "Address copied to clipboard!"
			}
			cmds = append(cmds, clearStatusAfter(2*time.Second))
		}
	}
	return m, cmds
}

func (m model) handleAccountsKey(key string, cmds []tea.Cmd) (model, []tea.Cmd) {
	switch key {
	case "up", "k":
		if m.accountIdx > 0 {
			m.accountIdx--
		}
	case "down", "j":
		if m.accountIdx < len(m.accounts)-1 {
			m.accountIdx++
		}
	case "n":
		m.creating = true
		m.nicknameInput.Focus()
	case "enter", "s":
		if len(m.accounts) > 0 && !m.accountsBusy {
			selected := m.accounts[m.accountIdx]
			if m.active == nil || m.active.ID != selected.ID {
				m.accountsBusy = true
				cmds = append(cmds, m.switchAccountCmd(selected.ID))
			}
		}
	case "d":
		if len(m.accounts) > 0 {
			m.confirmDelete = true
		}
	case "c":
		if len(m.accounts) > 0 {
			if err := clipboard.WriteAll(m.accounts[m.accountIdx].Address); err != nil {
				m.statusMessage = "Failed to copy to clipboard"
			} else {
				m.statusMessage = "Address copied to clipboard!"
			}
			cmds = append(cmds, clearStatusAfter(2*time.Second))
		}
	}
	return m, cmds
}

func (m model) handleHistoryKey(key string, cmds []tea.Cmd) (model, []tea.Cmd) {
	switch key {
	case "up", "k":
		if m.txIdx > 0 {
			m.txIdx--
		}
	case "down", "j":
		if m.txIdx < len(m.filteredTransactions())-1 {
			m.txIdx++
		}
	case "a":
		m.txFilter = "all"
		m.txIdx = 0
	case "o":
		m.txFilter = models.TxSent
		m.txIdx = 0
	case "i":
		m.txFilter = models.TxReceived
		m.txIdx = 0
	case "e":
		txs := m.filteredTransactions()
		if m.txIdx < len(txs) {
			url := fmt.Sprintf("%s/txblock/%s?network=testnet", strings.TrimRight(m.cfg.ExplorerURL, "/"), txs[m.txIdx].Digest)
			if err := openBrowser(url); err != nil {
				m.statusMessage = fmt.Sprintf("Failed to open browser: %v", err)
			} else {
				m.statusMessage = "Opened in browser"
			}
			cmds = append(cmds, clearStatusAfter(2*time.Second))
		}
	}
	return m, cmds
}

func (m model) handleSendKey(msg tea.KeyMsg, cmds []tea.Cmd) (model, []tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewDashboard
		m.sendInputs[0].Blur()
		m.sendInputs[1].Blur()
		return m, cmds
	case "tab", "shift+tab", "up", "down":
		m.sendFocus = (m.sendFocus + 1) % 2
		for i := range m.sendInputs {
			if i == m.sendFocus {
				m.sendInputs[i].Focus()
			} else {
				m.sendInputs[i].Blur()
			}
		}
		return m, cmds
	case "enter":
		if !m.sending {
			m.sending = true
			m.sendError = ""
			m.sendSuccess = ""
			cmds = append(cmds, m.sendTokensCmd(m.sendInputs[0].Value(), m.sendInputs[1].Value()))
		}
		return m, cmds
	// Quick amounts, mirroring the 0.1 / 1 / 50% / Max shortcuts.
	case "f2":
		m.sendInputs[1].SetValue("0.1")
		return m, cmds
	case "f3":
		m.sendInputs[1].SetValue("1")
		return m, cmds
	case "f4":
		if m.active != nil {
			m.sendInputs[1].SetValue(fmt.Sprintf("%.4f", m.active.Balance*0.5))
		}
		return m, cmds
	case "f5":
		if m.active != nil {
			m.sendInputs[1].SetValue(fmt.Sprintf("%.4f", m.active.Balance))
		}
		return m, cmds
	}

	var cmd tea.Cmd
	m.sendInputs[m.sendFocus], cmd = m.sendInputs[m.sendFocus].Update(msg)
	cmds = append(cmds, cmd)
	return m, cmds
}
