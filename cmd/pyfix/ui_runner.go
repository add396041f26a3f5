package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pyfix/internal/driver"
	"pyfix/internal/fix"
	"pyfix/internal/ui"
)

type fixOutcome struct {
	results []driver.FixPathResult
	err     error
}

// runFixWithUI запускает FixPaths в фоне и рисует прогресс через Bubble Tea.
func runFixWithUI(cmd *cobra.Command, files []string, reports []fix.Report, opts driver.FixPathsOptions) ([]driver.FixPathResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	optsCopy := opts
	optsCopy.OnEvent = func(ev driver.Event) { events <- ev }

	go func() {
		results, err := driver.FixPaths(cmd.Context(), files, reports, optsCopy)
		outcomeCh <- fixOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("pyfix", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
