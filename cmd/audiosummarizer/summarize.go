package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
	"github.com/nguyentantai21042004/audio-summarizer/internal/summarizer"
)

var docxOut string

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a local .wav or .mp3 file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&docxOut, "docx", "", "also write the summary to this .docx file")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	path := args[0]
	mimeType, ok := intake.MimeTypeForExt(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("%w: %s", intake.ErrUnsupportedFormat, filepath.Base(path))
	}

	result := summarizer.NewGemini(cfg, log).SummarizeFile(cmd.Context(), path, mimeType)
	if !result.OK() {
		return errors.New(result.Display())
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Text)

	if docxOut != "" {
		if err := writeDocxFile(docxOut, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), result.Text); err != nil {
			return err
		}
		log.Info(cmd.Context(), "Wrote %s", docxOut)
	}
	return nil
}

func writeDocxFile(path, title, summary string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := summarizer.WriteDocx(f, title, summary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
