package tui

import (
	"github.com/moyu-x/dupe-finder/internal"
)

type countFilesMsg struct {
	records []internal.FileRecord
}

type progressMsg internal.ProgressUpdate

type progressClosedMsg struct{}

type scanCompleteMsg struct {
	report *internal.DuplicateReport
}

type errMsg error
