package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"emx/internal/driver"
	"emx/internal/ui"
)

type convertOutcome struct {
	results []*driver.FileResult
	err     error
}

// runConvertDirWithUI запускает конверсию директории, транслируя
// события фаз в прогресс-модель. Конверсия идёт в фоне; TUI живёт до
// закрытия канала событий.
func runConvertDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) ([]*driver.FileResult, error) {
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan convertOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.PhaseEvent) {
			select {
			case events <- ev:
			default:
				// Переполненный канал не должен тормозить конверсию.
			}
		}
		results, err := driver.ConvertDir(ctx, dir, optsCopy)
		outcomeCh <- convertOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model)
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
