package main

import (
	"fmt"
	"os"
	"strings"
)

// progressMode is the value of --ui: whether multi-file runs draw the
// bubbletea progress list.
type progressMode int

const (
	progressAuto progressMode = iota
	progressAlways
	progressNever
)

var progressModes = map[string]progressMode{
	"":       progressAuto,
	"auto":   progressAuto,
	"on":     progressAlways,
	"always": progressAlways,
	"off":    progressNever,
	"never":  progressNever,
}

func parseProgressMode(value string) (progressMode, error) {
	mode, ok := progressModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return progressAuto, fmt.Errorf("--ui: unknown mode %q, use auto, on or off", value)
	}
	return mode, nil
}

// showProgress decides for a run over files inputs. A single file finishes
// too fast to be worth a list. Auto keeps the list away from rewritten code
// on stdout and from redirected output.
func showProgress(mode progressMode, files int, stdoutBusy bool) bool {
	if files < 2 {
		return false
	}
	switch mode {
	case progressAlways:
		return true
	case progressNever:
		return false
	}
	return !stdoutBusy && isTerminal(os.Stdout) && isTerminal(os.Stderr)
}
