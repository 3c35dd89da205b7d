package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"suiwal/pkg/models"
	"suiwal/pkg/utils"
)

func (m model) View() string {
	if m.loading {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			fmt.Sprintf("%s Loading wallet...", m.spinner.View()),
		)
	}

	if m.confirmDelete {
		return m.viewConfirmDelete()
	}

	if m.creating {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render("Create Account"),
				"\n",
				m.nicknameInput.View(),
				"\n",
				subtleStyle.Render("Enter to create • Esc to cancel"),
			)),
		)
	}

	var content string
	switch m.view {
	case viewDashboard:
		content = m.viewDashboard()
	case viewAccounts:
		content = m.viewAccounts()
	case viewSend:
		content = m.viewSend()
	case viewHistory:
		content = m.viewHistory()
	}

	topBar := m.renderTopBar()
	footer := m.renderFooter()

	h := m.height - 1
	if h < 0 {
		h = 0
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		topBar,
		lipgloss.Place(
			m.width,
			h,
			lipgloss.Center,
			lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, content, "\n", footer),
		),
	)
}

func (m model) renderTopBar() string {
	tabs := []struct {
		key  string
		name string
		view view
	}{
		{"1", "Dashboard", viewDashboard},
		{"2", "Accounts", viewAccounts},
		{"3", "Send", viewSend},
		{"4", "History", viewHistory},
	}

	var rendered []string
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.name)
		if m.view == t.view {
			rendered = append(rendered, navActiveStyle.Render(label))
		} else {
			rendered = append(rendered, navStyle.Render(label))
		}
	}
	leftBlock := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	spinnerView := ""
	if m.refreshing || m.accountsBusy || m.sending || m.requestingFunds {
		spinnerView = m.spinner.View() + " "
	}
	activeStr := "No active account"
	if m.active != nil {
		activeStr = fmt.Sprintf("%s %s", m.active.Nickname, utils.TruncateMiddle(m.active.Address, 6, 4))
	}
	rightBlock := subtleStyle.Render(fmt.Sprintf("%s%s ", spinnerView, activeStr))

	gap := m.width - lipgloss.Width(leftBlock) - lipgloss.Width(rightBlock)
	if gap < 0 {
		gap = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, strings.Repeat(" ", gap), rightBlock)
}

func (m model) renderFooter() string {
	var line string
	switch m.view {
	case viewDashboard:
		line = "f:faucet • c:copy • r:refresh • 1-4:views • q:quit"
	case viewAccounts:
		line = "↑/↓:select • n:new • s/ent:switch • d:delete • c:copy • q:quit"
	case viewSend:
		line = "Tab:field • Enter:send • F2:0.1 F3:1 F4:50% F5:max • Esc:back"
	case viewHistory:
		line = "↑/↓:select • a:all o:sent i:received • e:explorer • r:refresh • q:quit"
	}
	line += fmt.Sprintf(" • v%s", Version)

	var footer string
	if m.width > 0 {
		footer = subtleStyle.Width(m.width).Align(lipgloss.Center).Render(line)
	} else {
		footer = subtleStyle.Render(line)
	}

	if m.statusMessage != "" {
		footer = lipgloss.JoinVertical(lipgloss.Center, infoStyle.Render(m.statusMessage), footer)
	}
	return footer
}

func (m model) viewDashboard() string {
	header := titleStyle.Render("Sui Wallet")

	if m.active == nil {
		return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			header,
			"\n",
			"No accounts yet.",
			subtleStyle.Render("Press 2, then n to create one."),
		))
	}

	balStr := fmt.Sprintf("%s SUI", utils.FormatAmount(m.active.Balance, m.cfg.TokenDecimals))
	balance := balanceStyle.Render(balStr)
	addr := fmt.Sprintf("%s • %s", m.active.Nickname, utils.TruncateMiddle(m.active.Address, 10, 6))

	graph := ""
	if total := m.totalBalance(); total > 0 {
		graphWidth := m.width - 20
		if graphWidth > 60 {
			graphWidth = 60
		}
		if graphWidth > 10 {
			graph = asciigraph.Plot(m.balanceOverviewSeries(),
				asciigraph.Height(6),
				asciigraph.Width(graphWidth),
				asciigraph.Caption("Balance Overview (SUI)"),
			)
		}
	}

	faucetLine := m.renderFaucetLine()

	summary := subtleStyle.Render(fmt.Sprintf("%d accounts • %d sent • %d received",
		len(m.accounts), m.sentCount(), m.receivedCount()))

	parts := []string{header, addr, "\n", balance}
	if graph != "" {
		parts = append(parts, "\n", graph)
	}
	parts = append(parts, "\n", faucetLine, summary)
	if activity := m.renderRecentActivity(); activity != "" {
		parts = append(parts, "\n", activity)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// renderRecentActivity shows the newest few transactions on the dashboard.
func (m model) renderRecentActivity() string {
	if len(m.txs) == 0 {
		return ""
	}
	rows := []string{tableHeaderStyle.Render("Recent Activity")}
	for i, tx := range m.txs {
		if i >= 5 {
			break
		}
		rows = append(rows, fmt.Sprintf("%-12s %-9s %s",
			utils.TruncateString(tx.Digest, 12),
			tx.Type,
			subtleStyle.Render(utils.RelativeTime(tx.Timestamp)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderFaucetLine() string {
	switch {
	case m.requestingFunds:
		return fmt.Sprintf("%s Requesting testnet tokens...", m.spinner.View())
	case m.cooldown > 0:
		line := warnStyle.Render(fmt.Sprintf("Faucet: Wait %ds", m.cooldown))
		if m.faucetMessage != "" {
			line = warnStyle.Render(m.faucetMessage) + "\n" + line
		}
		return line
	case m.faucetMsgType == "success":
		return infoStyle.Render(m.faucetMessage)
	case m.faucetMsgType == "error":
		return errStyle.Render(m.faucetMessage)
	default:
		return subtleStyle.Render("f: request testnet tokens")
	}
}

func (m model) viewAccounts() string {
	header := titleStyle.Render(fmt.Sprintf("Accounts (%d)", len(m.accounts)))

	if len(m.accounts) == 0 {
		return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			header,
			"\n",
			"No accounts.",
			subtleStyle.Render("Press n to create one."),
		))
	}

	var rows []string
	for i, acc := range m.accounts {
		cursor := "  "
		if i == m.accountIdx {
			cursor = "> "
		}
		marker := "  "
		if m.active != nil && m.active.ID == acc.ID {
			marker = infoStyle.Render("● ")
		}
		row := fmt.Sprintf("%s%s%-16s %s %12s SUI",
			cursor,
			marker,
			utils.TruncateString(acc.Nickname, 16),
			utils.TruncateMiddle(acc.Address, 8, 6),
			utils.FormatAmount(acc.Balance, m.cfg.TokenDecimals),
		)
		if i == m.accountIdx {
			row = lipgloss.NewStyle().Bold(true).Render(row)
		}
		rows = append(rows, row)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"\n",
		strings.Join(rows, "\n"),
	))
}

func (m model) viewConfirmDelete() string {
	name := ""
	if m.accountIdx < len(m.accounts) {
		name = m.accounts[m.accountIdx].Nickname
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Confirm Delete"),
			"\n",
			fmt.Sprintf("Delete account %q?", name),
			"This cannot be undone.",
			"\n",
			subtleStyle.Render("(y) Yes • (n) No"),
		)),
	)
}

func (m model) viewSend() string {
	header := titleStyle.Render("Send SUI")

	if m.active == nil {
		return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			header,
			"\n",
			"No active account to send from.",
		))
	}

	from := subtleStyle.Render(fmt.Sprintf("From: %s (%s SUI)",
		utils.TruncateMiddle(m.active.Address, 8, 6),
		utils.FormatAmount(m.active.Balance, m.cfg.TokenDecimals),
	))

	labels := []string{"Recipient", "Amount"}
	var inputs []string
	for i, label := range labels {
		inputs = append(inputs, fmt.Sprintf("%-10s %s", label, m.sendInputs[i].View()))
	}

	var status string
	switch {
	case m.sending:
		status = fmt.Sprintf("%s Sending...", m.spinner.View())
	case m.sendError != "":
		status = errStyle.Render(m.sendError)
	case m.sendSuccess != "":
		status = infoStyle.Render(m.sendSuccess)
	}

	parts := []string{header, "\n", from, "\n", strings.Join(inputs, "\n")}
	if status != "" {
		parts = append(parts, "\n", status)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) viewHistory() string {
	txs := m.filteredTransactions()

	filterLabel := m.txFilter
	if filterLabel == "" {
		filterLabel = "all"
	}
	header := titleStyle.Render(fmt.Sprintf("History — %s (%d)", filterLabel, len(txs)))
	counts := subtleStyle.Render(fmt.Sprintf("%d sent • %d received", m.sentCount(), m.receivedCount()))

	if len(txs) == 0 {
		return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			header,
			counts,
			"\n",
			subtleStyle.Render("No transactions found"),
		))
	}

	headers := tableHeaderStyle.Render(fmt.Sprintf("%-12s %-10s %-10s %-20s", "DIGEST", "TYPE", "STATUS", "TIME"))
	var rows []string
	for i, tx := range txs {
		cursor := "  "
		if i == m.txIdx {
			cursor = "> "
		}
		typeStr := tx.Type
		if tx.Type == models.TxSent {
			typeStr = errStyle.Render("sent    ")
		} else if tx.Type == models.TxReceived {
			typeStr = infoStyle.Render("received")
		}
		row := fmt.Sprintf("%s%-12s %s %-10s %-20s %s",
			cursor,
			utils.TruncateString(tx.Digest, 12),
			typeStr,
			tx.Status,
			utils.FormatTimestamp(tx.Timestamp),
			subtleStyle.Render(utils.RelativeTime(tx.Timestamp)),
		)
		rows = append(rows, row)
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		counts,
		"\n",
		headers,
		strings.Join(rows, "\n"),
	))
}
