package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"suiwal/pkg/api"
	"suiwal/pkg/config"
	"suiwal/pkg/server"
	"suiwal/pkg/tui"
	"suiwal/pkg/wallet"

	log "github.com/sirupsen/logrus"
)

// Version should be set during build
var Version = "dev"

func main() {
	testFlag := flag.Bool("t", false, "Test service connectivity and exit")
	testLongFlag := flag.Bool("test", false, "Test service connectivity and exit")
	jsonFlag := flag.Bool("json", false, "Output test results as JSON")
	configFlag := flag.String("config", "", "Path to configuration file")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	serverFlag := flag.Bool("server", false, "Run in headless server mode")
	portFlag := flag.Int("port", 8080, "Port for API server")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("suiwal version %s\n", Version)
		os.Exit(0)
	}

	cfgInput := *configFlag
	if cfgInput == "" && len(flag.Args()) > 0 {
		cfgInput = flag.Args()[0]
	}
	path, err := config.GetConfigPath(cfgInput)
	if err != nil {
		fmt.Printf("Error determining config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		fmt.Printf("Error loading config from %s: %v\n", path, err)
		os.Exit(1)
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout())

	if *testFlag || *testLongFlag {
		if !*jsonFlag {
			fmt.Printf("Testing wallet service at: %s\n", cfg.APIBaseURL)
		}

		report := client.Ping(context.Background())

		if *jsonFlag {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(report)
		} else {
			for _, ep := range report.Endpoints {
				if ep.Status == "ok" {
					fmt.Printf("  %s ... OK (%dms)\n", ep.Path, ep.LatencyMS)
				} else {
					fmt.Printf("  %s ... Failed: %s\n", ep.Path, ep.Error)
				}
			}
			if report.Reachable {
				fmt.Printf("Found %d accounts", report.AccountCount)
				if report.ActiveNickname != "" {
					fmt.Printf(", active: %s", report.ActiveNickname)
				}
				fmt.Println()
			} else {
				fmt.Println("Service unreachable.")
			}
		}

		if !report.Reachable {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// The TUI owns the terminal, so keep log noise down unless headless.
	if *serverFlag {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	bus := wallet.NewBus()
	store := wallet.NewStore(client, bus)
	transfer := wallet.NewTransfer(client, store)
	faucet := wallet.NewFaucet(client, store, bus)
	feed := wallet.NewFeed(client, bus, cfg.HistoryLimit)
	defer faucet.Stop()

	srv := server.NewServer(store, faucet, bus)
	go func() {
		if err := srv.Start(*portFlag); err != nil {
			log.WithError(err).Error("server error")
		}
	}()

	if *serverFlag {
		log.WithField("port", *portFlag).Info("running in server mode")
		store.Resync(context.Background())
		select {} // Keep alive
	}

	tui.Start(cfg, store, transfer, faucet, feed, bus, Version)
}
