package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/audio-summarizer/internal/config"
	"github.com/nguyentantai21042004/audio-summarizer/internal/logger"
)

var (
	wavBytes = []byte("RIFF\x24\x08\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x80\x3e\x00\x00")
	mp3Bytes = []byte("ID3\x03\x00\x00\x00\x00\x00\x21TIT2 fake mp3 frame data")
)

func newTestIntake(t *testing.T, mutate ...func(*config.Config)) (Intake, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &config.Config{Upload: config.UploadConfig{TempDir: dir}}
	for _, m := range mutate {
		m(cfg)
	}
	require.NoError(t, cfg.Validate())
	return New(cfg, logger.Nop()), dir
}

func TestStore(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantExt  string
		wantMime string
	}{
		{"wav", "meeting.wav", wavBytes, ".wav", "audio/wav"},
		{"mp3", "podcast.mp3", mp3Bytes, ".mp3", "audio/mpeg"},
		{"uppercase extension", "MEMO.MP3", mp3Bytes, ".mp3", "audio/mpeg"},
		{"path in name", "../../etc/voice.wav", wavBytes, ".wav", "audio/wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, dir := newTestIntake(t)

			up, err := in.Store(context.Background(), tt.filename, strings.NewReader(string(tt.data)))
			require.NoError(t, err)
			defer up.Close()

			assert.Equal(t, dir, filepath.Dir(up.Path))
			assert.True(t, strings.HasSuffix(up.Path, tt.wantExt), "extension preserved: %s", up.Path)
			assert.Equal(t, tt.wantExt, up.Ext)
			assert.Equal(t, tt.wantMime, up.MimeType)
			assert.Equal(t, filepath.Base(tt.filename), up.Name)
			assert.Equal(t, int64(len(tt.data)), up.Size)

			got, err := up.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestStoreUniqueNames(t *testing.T) {
	in, _ := newTestIntake(t)

	a, err := in.Store(context.Background(), "same.wav", strings.NewReader(string(wavBytes)))
	require.NoError(t, err)
	defer a.Close()
	b, err := in.Store(context.Background(), "same.wav", strings.NewReader(string(wavBytes)))
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Path, b.Path)
}

func TestStoreRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		mutate   func(*config.Config)
		wantErr  error
	}{
		{"unsupported extension", "notes.txt", "hello", nil, ErrUnsupportedFormat},
		{"no extension", "recording", "hello", nil, ErrUnsupportedFormat},
		{"empty file", "silence.wav", "", nil, ErrEmptyUpload},
		{
			name:     "too large",
			filename: "long.wav",
			data:     string(wavBytes),
			mutate:   func(c *config.Config) { c.Upload.MaxBytes = 8 },
			wantErr:  ErrTooLarge,
		},
		{
			name:     "not audio when sniffing",
			filename: "fake.wav",
			data:     "just some plain text pretending to be audio",
			mutate:   func(c *config.Config) { c.Upload.SniffContent = true },
			wantErr:  ErrNotAudio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mutate []func(*config.Config)
			if tt.mutate != nil {
				mutate = append(mutate, tt.mutate)
			}
			in, dir := newTestIntake(t, mutate...)

			up, err := in.Store(context.Background(), tt.filename, strings.NewReader(tt.data))

			assert.Nil(t, up)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)

			entries, _ := os.ReadDir(dir)
			assert.Empty(t, entries, "rejected upload must not leave a file behind")
		})
	}
}

func TestStoreSniffAcceptsAudio(t *testing.T) {
	in, _ := newTestIntake(t, func(c *config.Config) { c.Upload.SniffContent = true })

	for name, data := range map[string][]byte{"a.wav": wavBytes, "b.mp3": mp3Bytes} {
		up, err := in.Store(context.Background(), name, strings.NewReader(string(data)))
		require.NoError(t, err, name)
		require.NoError(t, up.Close())
	}
}

func TestStoreCanceled(t *testing.T) {
	in, _ := newTestIntake(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := in.Store(ctx, "a.wav", strings.NewReader(string(wavBytes)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUploadClose(t *testing.T) {
	in, _ := newTestIntake(t)

	up, err := in.Store(context.Background(), "a.wav", strings.NewReader(string(wavBytes)))
	require.NoError(t, err)

	require.NoError(t, up.Close())
	_, statErr := os.Stat(up.Path)
	assert.True(t, os.IsNotExist(statErr), "file should be deleted on Close")

	assert.NoError(t, up.Close(), "second Close is a no-op")
}

func TestSweep(t *testing.T) {
	in, dir := newTestIntake(t)

	assert.NoError(t, in.Sweep(context.Background()), "missing dir is fine")

	up, err := in.Store(context.Background(), "left-behind.wav", strings.NewReader(string(wavBytes)))
	require.NoError(t, err)
	keep := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0644))

	require.NoError(t, in.Sweep(context.Background()))

	_, statErr := os.Stat(up.Path)
	assert.True(t, os.IsNotExist(statErr))
	assert.FileExists(t, keep)
}

func TestIsAudioFile(t *testing.T) {
	assert.True(t, IsAudioFile("/in/a.wav"))
	assert.True(t, IsAudioFile("/in/b.MP3"))
	assert.False(t, IsAudioFile("/in/c.m4a"))
	assert.False(t, IsAudioFile("/in/.hidden"))
}
