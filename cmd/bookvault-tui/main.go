package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"bookvault/internal/tui"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "Base URL of the catalog API")
	flag.Parse()

	_ = godotenv.Load()

	m := tui.New(tui.NewClient(*server))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
