// Command krishisahay runs the interactive terminal assistant.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"krishisahay/internal/assistant"
	"krishisahay/internal/config"
	"krishisahay/internal/tui"
	"krishisahay/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so keep the logger quiet unless something
	// actually breaks.
	lg, err := logger.New("error")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	svc, err := assistant.Open(cfg, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start assistant: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(tui.New(svc), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
