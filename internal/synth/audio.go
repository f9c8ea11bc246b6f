package synth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/newscast/internal/config"
	"github.com/nguyentantai21042004/newscast/internal/logger"
	"github.com/nguyentantai21042004/newscast/pkg/executor"
)

// Encoder writes synthesized samples to disk and measures audio files.
type Encoder struct {
	executor executor.Executor
	cfg      config.FFmpegConfig
	logger   logger.Logger
}

// NewEncoder creates an Encoder that shells out to ffmpeg and ffprobe.
func NewEncoder(exec executor.Executor, cfg config.FFmpegConfig, log logger.Logger) *Encoder {
	if cfg.Binary == "" {
		cfg.Binary = "ffmpeg"
	}
	if cfg.ProbeBinary == "" {
		cfg.ProbeBinary = "ffprobe"
	}
	if cfg.Quality <= 0 {
		cfg.Quality = 2
	}
	return &Encoder{executor: exec, cfg: cfg, logger: log.With("audio")}
}

// Write stores samples at path. A .mp3 target goes through a temporary WAV
// converted by ffmpeg; if the conversion fails the WAV itself is moved to
// path. Any other extension is written as WAV directly.
func (e *Encoder) Write(ctx context.Context, samples []int16, sampleRate int, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return writeWAV(path, samples, sampleRate)
	}

	tempWAV := strings.TrimSuffix(path, filepath.Ext(path)) + "_temp.wav"
	if err := writeWAV(tempWAV, samples, sampleRate); err != nil {
		return err
	}

	// -codec:a libmp3lame: LAME mp3 encoder
	// -qscale:a: VBR quality, 0 best .. 9 worst
	args := []string{
		"-i", tempWAV,
		"-codec:a", "libmp3lame",
		"-qscale:a", strconv.Itoa(e.cfg.Quality),
		"-y",
		path,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.Binary, args...); err != nil {
		e.logger.Warn(ctx, "MP3 conversion failed, keeping WAV data at %s: %v", path, err)
		if err := os.Rename(tempWAV, path); err != nil {
			return fmt.Errorf("move wav to %s: %w", path, err)
		}
		return nil
	}

	if err := os.Remove(tempWAV); err != nil {
		e.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", tempWAV, err)
	}
	e.logger.Info(ctx, "Audio written: %s", path)
	return nil
}

// Duration reads the length from a WAV header, falling back to ffprobe for
// other containers.
func (e *Encoder) Duration(ctx context.Context, path string) (time.Duration, error) {
	if d, err := wavDuration(path); err == nil {
		return d, nil
	}

	out, err := e.executor.Execute(ctx, e.cfg.ProbeBinary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func writeWAV(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

func wavDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%s is not a wav file", path)
	}
	return dec.Duration()
}
