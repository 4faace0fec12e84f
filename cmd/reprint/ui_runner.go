package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"reprint/internal/driver"
	"reprint/internal/ui"
)

type runOutcome struct {
	results []driver.Result
	err     error
}

// runWithUI runs fn while a progress model renders its events on stderr.
func runWithUI(ctx context.Context, title string, files []string, opts driver.Options,
	fn func(context.Context, []string, driver.Options) ([]driver.Result, error)) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := fn(ctx, files, optsCopy)
		outcomeCh <- runOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал, дочитываем сами
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
