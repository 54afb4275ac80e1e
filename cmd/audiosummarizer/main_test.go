package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/intake"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		docxOut = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestSummarizeCommand(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "missing.env")

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := execute(t, "summarize", "--env-file", noEnv, filepath.Join(dir, "notes.txt"))
		assert.ErrorIs(t, err, intake.ErrUnsupportedFormat)
	})

	t.Run("missing api key is a failure", func(t *testing.T) {
		wav := filepath.Join(dir, "memo.wav")
		require.NoError(t, os.WriteFile(wav, []byte("RIFF fake wav"), 0644))

		out, err := execute(t, "summarize", "--env-file", noEnv, wav)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
		assert.Empty(t, out)
	})

	t.Run("requires a file argument", func(t *testing.T) {
		_, err := execute(t, "summarize", "--env-file", noEnv)
		assert.Error(t, err)
	})
}

func TestServeFailsBeforeListeningOnBadDropFolder(t *testing.T) {
	dir := t.TempDir()
	notADir := filepath.Join(dir, "input")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0644))

	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("UPLOAD_TEMP_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("WATCH_INPUT_DIR", notADir)
	t.Setenv("WATCH_OUTPUT_DIR", filepath.Join(dir, "output"))

	done := make(chan error, 1)
	go func() {
		_, err := execute(t, "serve", "--env-file", filepath.Join(dir, "missing.env"))
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create directory")
	case <-time.After(5 * time.Second):
		t.Fatal("serve kept running after the drop folder failed to start")
	}
}

func TestNewDropFolderDisabled(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())

	w, err := newDropFolder(cfg, nil, logger.Nop())

	require.NoError(t, err)
	assert.Nil(t, w)
}
