package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/newscast/internal/pipeline"
)

type runOptions struct {
	url           string
	output        string
	dir           string
	voice         string
	summarization string
	audio         string
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Produce audio for a single article URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(opts.url) == "" {
				return fmt.Errorf("--url is required")
			}
			if cmd.Flags().Changed("summarization") {
				enabled, err := parseYesNo(opts.summarization)
				if err != nil {
					return fmt.Errorf("--summarization: %w", err)
				}
				cfg.Summarizer.Enabled = enabled
			}
			if opts.dir != "" {
				cfg.Paths.Output = opts.dir
			}
			if opts.voice != "" {
				cfg.TTS.Voice = opts.voice
			}

			runCtx := cmd.Context()
			log := ctx.logger()
			p, err := buildPipeline(runCtx, cfg, pipeline.Options{CustomAudio: opts.audio}, log)
			if err != nil {
				return err
			}

			result, err := p.Run(runCtx, opts.url, opts.output)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderResult(result, shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Article URL (VnExpress or Tien Phong)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file name without extension (default tiktok_news_<timestamp>)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Output directory (overrides paths.output)")
	cmd.Flags().StringVar(&opts.voice, "voice", "", "Voice key or name (overrides tts.voice)")
	cmd.Flags().StringVar(&opts.summarization, "summarization", "", "Summarize the article first: yes or no (default from summarizer.enabled)")
	cmd.Flags().StringVar(&opts.audio, "audio", "", "Pre-recorded audio file to use instead of synthesis")

	return cmd
}

func parseYesNo(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "1", "":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", v)
	}
}
