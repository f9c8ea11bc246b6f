package pipeline

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/models"
)

const defaultTitleWidth = 50

// AssembleScript builds "<intro>... <body> ... <outro>" where the intro is
// the configured prefix followed by the title cut to cfg.TitleWidth columns.
func AssembleScript(cfg config.ScriptConfig, title, body string) models.Script {
	width := cfg.TitleWidth
	if width <= 0 {
		width = defaultTitleWidth
	}

	intro := cfg.IntroPrefix + strings.TrimSpace(runewidth.Truncate(strings.TrimSpace(title), width, ""))
	body = strings.TrimSpace(body)
	outro := strings.TrimSpace(cfg.Outro)

	return models.Script{
		Intro: intro,
		Body:  body,
		Outro: outro,
		Text:  intro + "... " + body + " ... " + outro,
	}
}

// DefaultOutputName is the file stem used when the caller gives none.
func DefaultOutputName(now time.Time) string {
	return "tiktok_news_" + now.Format("20060102_150405")
}
