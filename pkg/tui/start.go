package tui

import (
	"fmt"
	"os"

	"suiwal/pkg/config"
	"suiwal/pkg/wallet"

	tea "github.com/charmbracelet/bubbletea"
)

func Start(cfg config.Config, store *wallet.Store, transfer *wallet.Transfer, faucet *wallet.Faucet, feed *wallet.Feed, bus *wallet.Bus, version string) {
	Version = version
	p := tea.NewProgram(
		initialModel(cfg, store, transfer, faucet, feed, bus),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
