package main

import (
	"flag"
	"fmt"
	"os"

	"transit-dashboard/client"
	"transit-dashboard/config"
	"transit-dashboard/model"
	"transit-dashboard/screen"
	"transit-dashboard/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		offline = flag.Bool("offline", false, "Show the built-in demo snapshots instead of calling the API")
		baseURL = flag.String("url", "", "API base URL (defaults to webserver.base_url)")
		token   = flag.String("token", os.Getenv("TRANSIT_TOKEN"), "Admin bearer token")
		apiKey  = flag.String("api-key", os.Getenv("TRANSIT_ADMIN_KEY"), "Admin API key")
		start   = flag.String("screen", screen.ScreenDashboard, "Screen to open first: dashboard or advanced")
		logFile = flag.String("log", "", "Write logs to this file")
	)
	flag.Parse()

	// the terminal belongs to the UI; logs go to a file or nowhere
	log.Logger = zerolog.Nop()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	var (
		dashboard screen.Source[model.DashboardSnapshot]
		advanced  screen.Source[model.AdvancedAnalyticsSnapshot]
	)
	if *offline {
		dashboard = screen.StaticDashboardSource()
		advanced = screen.StaticAdvancedSource()
	} else {
		url := *baseURL
		if url == "" {
			cfg := config.MustLoadConfig()
			url = cfg.WebServer.BaseURL
			if url == "" {
				url = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
			}
		}
		api, err := client.NewClient(url, client.WithToken(*token), client.WithAPIKey(*apiKey))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid API url %q: %v\n", url, err)
			os.Exit(1)
		}
		dashboard = api.DashboardSource()
		advanced = api.AdvancedSource()
	}

	navigate := func(target string) {
		log.Info().Str("target", target).Msg("Navigation requested")
	}

	m := tui.New(dashboard, advanced, tui.Options{Navigate: navigate, Start: *start})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
