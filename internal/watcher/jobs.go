package watcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/newscast/internal/logger"
)

var jobExtensions = []string{".txt", ".url"}

// IsJobFile reports whether path has a job file extension. Hidden files are skipped.
func IsJobFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return slices.Contains(jobExtensions, strings.ToLower(filepath.Ext(name)))
}

// ReadJobFile returns the URLs listed in a job file. Blank lines and lines
// starting with '#' are ignored.
func ReadJobFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open job file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	return urls, nil
}

// JobHandler returns an EventHandler that runs every URL of a job file and
// then moves the file into archivedDir. Output names derive from the job
// file name so concurrent jobs never collide.
func JobHandler(run RunFunc, archivedDir string, log logger.Logger) EventHandler {
	return func(ctx context.Context, path string) error {
		urls, err := ReadJobFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug(ctx, "Job file %s already handled", path)
			return nil
		}
		if err != nil {
			return err
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		failed := 0
		for i, u := range urls {
			name := stem
			if len(urls) > 1 {
				name = fmt.Sprintf("%s_%02d", stem, i+1)
			}
			log.Info(ctx, "[%d/%d] %s", i+1, len(urls), u)
			if err := run(ctx, u, name); err != nil {
				log.Error(ctx, "Job %s: %s failed: %v", stem, u, err)
				failed++
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		if err := archive(path, archivedDir); err != nil {
			log.Warn(ctx, "Failed to move job file to archived folder: %v", err)
		}
		log.Info(ctx, "Job %s complete: %d success, %d failed", stem, len(urls)-failed, failed)
		return nil
	}
}

func archive(path, archivedDir string) error {
	if err := os.MkdirAll(archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	dest := filepath.Join(archivedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
