package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/viewfinderco/feeddial/internal/feed"
	"github.com/viewfinderco/feeddial/internal/ui"
)

func main() {
	if path := os.Getenv("FEEDDIAL_LOG"); path != "" {
		f, err := tea.LogToFile(path, "feeddial")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	seed := int64(7)
	if len(os.Args) > 1 {
		s, err := strconv.ParseInt(os.Args[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: seed must be an integer, got %q\n", os.Args[1])
			os.Exit(1)
		}
		seed = s
	}

	model := ui.New(feed.Demo(seed))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
