package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hnterm/internal/config"
	"hnterm/internal/debuglog"
	"hnterm/internal/hn"
	"hnterm/internal/store"
	"hnterm/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	flagConfig string
	flagLimit  int
	flagQuiet  bool
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "hnterm",
	Short: "Hacker News terminal client",
	Long:  "hnterm browses the Hacker News Top, Ask, Show and Jobs sections from the terminal.",
	RunE:  runTUI,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to configuration file")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "stories fetched per section (overrides config)")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "skip startup banner")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configGenCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hnterm %s\n", Version)
		fmt.Println("Hacker News terminal client")
	},
}

var configGenCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "hnterm", "config.toml")

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagLimit > 0 {
		cfg.API.StoryLimit = flagLimit
	}

	level := cfg.Log.Level
	if flagDebug {
		level = "debug"
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(level), cfg.Log.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer debuglog.Close()

	if !flagQuiet {
		tui.ShowBanner(Version)
	}

	client := hn.NewClient(hn.ClientOptions{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.HTTPTimeout,
		StoryLimit:  cfg.API.StoryLimit,
		Concurrency: cfg.API.Concurrency,
	})

	app := tui.NewApp(client, store.NewCache(), cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
