package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/nguyentantai21042004/newscast/internal/models"
	"github.com/nguyentantai21042004/newscast/internal/synth"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, colorize bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if colorize {
		tw.SetStyle(table.StyleColoredDark)
	} else {
		tw.SetStyle(table.StyleRounded)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderResult(r models.Result, colorize bool) string {
	audio := r.AudioPath
	if r.CustomAudio {
		audio += " (custom)"
	}
	summary := string(r.Summary.Provenance)
	if r.Summary.Chunks > 0 {
		summary = fmt.Sprintf("%s, %d/%d chunks", summary, r.Summary.ChunksSummarized, r.Summary.Chunks)
	}

	rows := [][]string{
		{"Run", r.RunID},
		{"Source", string(r.Article.Source)},
		{"Title", r.Article.Title},
		{"Summary", summary},
		{"Script words", strconv.Itoa(r.Script.WordCount())},
		{"Audio", audio},
		{"Duration", formatDuration(r.Duration)},
	}
	if r.ScriptPath != "" {
		rows = append(rows, []string{"Script", r.ScriptPath})
	}
	if r.DocxPath != "" {
		rows = append(rows, []string{"Document", r.DocxPath})
	}
	rows = append(rows, []string{"Elapsed", formatDuration(r.Elapsed)})

	return renderTable([]string{"Field", "Value"}, rows, nil, colorize)
}

func renderVoices(voices []synth.Voice) string {
	rows := make([][]string, 0, len(voices))
	for _, v := range voices {
		rows = append(rows, []string{v.Key, v.Name, v.Group})
	}
	return renderTable([]string{"Key", "Name", "Group"}, rows, nil, false)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(100 * time.Millisecond).String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
