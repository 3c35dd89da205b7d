package tui

import (
	"suiwal/pkg/config"
	"suiwal/pkg/models"
	"suiwal/pkg/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version is set by Start()
var Version = "dev"

// --- Views ---

type view int

const (
	viewDashboard view = iota
	viewAccounts
	viewSend
	viewHistory
)

// --- Messages ---

type walletEventMsg wallet.Event
type initialLoadMsg struct{}
type createResultMsg struct {
	account *models.Account
	err     error
}
type switchResultMsg struct{ err error }
type deleteResultMsg struct{ err error }
type sendResultMsg models.TransferResult
type faucetResultMsg models.FaucetResult
type historyRefreshedMsg struct{}
type resyncDoneMsg struct{}
type clearStatusMsg struct{}
type clearFaucetMsg struct{}

// --- Model ---

type model struct {
	cfg      config.Config
	store    *wallet.Store
	transfer *wallet.Transfer
	faucet   *wallet.Faucet
	feed     *wallet.Feed
	bus      *wallet.Bus
	sub      wallet.Subscriber

	view    view
	width   int
	height  int
	loading bool
	spinner spinner.Model

	statusMessage string

	accounts []models.Account
	active   *models.Account
	txs      []models.Transaction

	// accounts view
	accountIdx    int
	creating      bool
	nicknameInput textinput.Model
	confirmDelete bool
	accountsBusy  bool

	// send view
	sendInputs  []textinput.Model
	sendFocus   int
	sending     bool
	sendError   string
	sendSuccess string

	// faucet
	requestingFunds bool
	faucetMessage   string
	faucetMsgType   string // "success", "error" or "rate-limit"
	cooldown        int

	// history view
	txFilter   string // "all", "sent", "received"
	txIdx      int
	refreshing bool
}

func initialModel(cfg config.Config, store *wallet.Store, transfer *wallet.Transfer, faucet *wallet.Faucet, feed *wallet.Feed, bus *wallet.Bus) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ni := textinput.New()
	ni.Placeholder = "Account nickname (optional)"
	ni.Width = 40
	ni.CharLimit = 64

	sis := make([]textinput.Model, 2)
	for i := range sis {
		sis[i] = textinput.New()
		sis[i].Width = 50
	}
	sis[0].Placeholder = "0x..."
	sis[1].Placeholder = "0.00"

	return model{
		cfg:           cfg,
		store:         store,
		transfer:      transfer,
		faucet:        faucet,
		feed:          feed,
		bus:           bus,
		sub:           bus.Subscribe(),
		view:          viewDashboard,
		loading:       true,
		spinner:       s,
		nicknameInput: ni,
		sendInputs:    sis,
		txFilter:      "all",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		listenForWallet(m.sub),
		m.spinner.Tick,
		m.initialLoadCmd(),
	)
}
