package models

import (
	"strings"
	"time"
)

// Script is the narration text handed to synthesis: intro + body + outro.
type Script struct {
	Intro string
	Body  string
	Outro string
	Text  string
}

// WordCount is the number of whitespace-separated words in Text.
func (s Script) WordCount() int {
	return len(strings.Fields(s.Text))
}

// Result is the terminal success state of a pipeline run.
type Result struct {
	RunID      string
	Article    Article
	Summary    Summary
	Script     Script
	AudioPath  string
	ScriptPath string
	DocxPath   string
	Duration   time.Duration
	Elapsed    time.Duration

	// CustomAudio is true when a pre-recorded file replaced synthesis.
	CustomAudio bool
}
