package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/api"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/app"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/auth"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/config"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/logging"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
)

func main() {
	configPath := flag.String("config", "delivery-tui.yaml", "Path to YAML config file")
	server := flag.String("server", "", "Backend base URL (overrides config)")
	username := flag.String("username", "", "Login username")
	password := flag.String("password", "", "Login password")
	token := flag.String("token", "", "Session token (skips login)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Server.BaseURL = *server
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logging.New(logFile, logging.ParseLevel(cfg.Log.Level))

	client := api.NewClient(cfg.Server.BaseURL)

	cred := *token
	userLabel := ""
	if cred == "" {
		if *username == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "Provide -token, or -username and -password")
			os.Exit(1)
		}
		resp, err := client.Login(*username, *password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
			os.Exit(1)
		}
		cred = resp.Token
		userLabel = *username
	}
	client.SetToken(cred)

	gate := auth.NewGate()
	gate.SetCredential(cred)
	if !gate.ShouldSync() {
		fmt.Fprintln(os.Stderr, "Credential is invalid or expired")
		os.Exit(1)
	}

	engine := notify.NewEngine(client, gate, cfg.Server.BaseURL, notify.Options{
		FreshnessWindow:  cfg.Toast.FreshnessWindow.Std(),
		InfoDismissAfter: cfg.Toast.InfoDismissAfter.Std(),
		Logger:           log,
	})
	engine.SessionChanged()
	defer engine.Stop()

	m := app.New(engine, userLabel)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
