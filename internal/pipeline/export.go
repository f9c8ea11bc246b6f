package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/internal/models"
	"github.com/nguyentantai21042004/newscast/internal/summarizer"
)

// export writes the optional .txt and .docx companions next to the audio.
// Failures are logged; the audio is already complete at this point.
func (p *implPipeline) export(ctx context.Context, log logger.Logger, result *models.Result, stem string) {
	if p.cfg.Export.Text {
		path := stem + ".txt"
		if err := os.WriteFile(path, []byte(result.Script.Text+"\n"), 0644); err != nil {
			log.Warn(ctx, "Failed to write script %s: %v", path, err)
		} else {
			result.ScriptPath = path
		}
	}

	if p.cfg.Export.Docx {
		path := stem + ".docx"
		if err := summarizer.ExportDocx(path, result.Article, result.Summary, result.Script); err != nil {
			log.Warn(ctx, "Failed to write docx %s: %v", path, err)
		} else {
			result.DocxPath = path
		}
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
