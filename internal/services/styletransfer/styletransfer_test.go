package styletransfer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCleaner struct {
	mu    sync.Mutex
	paths []string
	delay time.Duration
}

func (c *recordingCleaner) Schedule(delay time.Duration, paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = delay
	c.paths = append(c.paths, paths...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeScript сохраняет шелл-скрипт, играющий роль style_transfer.py.
func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "transfer.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func newService(t *testing.T, scriptBody string, cleaner Cleaner) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	script := writeScript(t, dir, scriptBody)
	svc := New(discardLogger(), cleaner, "/bin/sh", script, dir, 10*time.Second, 2*time.Minute)
	return svc, dir
}

func TestTransferSuccess(t *testing.T) {
	cleaner := &recordingCleaner{}
	// скрипт получает content, style, output; копирует вход в выход
	svc, dir := newService(t, `echo "loading model"; cp "$1" "$3"; echo "SUCCESS"`, cleaner)

	outputPath, logs, err := svc.Transfer(context.Background(),
		strings.NewReader("content-bytes"), strings.NewReader("style-bytes"))

	require.NoError(t, err)
	assert.FileExists(t, outputPath)
	assert.Contains(t, logs, "loading model")
	assert.Contains(t, logs, "SUCCESS")

	// все три файла остаются на месте и отданы уборщику целиком
	contentFiles, globErr := filepath.Glob(filepath.Join(dir, "content_*"))
	require.NoError(t, globErr)
	require.Len(t, contentFiles, 1)
	styleFiles, globErr := filepath.Glob(filepath.Join(dir, "style_*"))
	require.NoError(t, globErr)
	require.Len(t, styleFiles, 1)
	assert.Equal(t, []string{contentFiles[0], styleFiles[0], outputPath}, cleaner.paths)
	assert.Equal(t, 2*time.Minute, cleaner.delay)
}

func TestTransferNoSuccessMarker(t *testing.T) {
	cleaner := &recordingCleaner{}
	svc, dir := newService(t, `echo "model blew up"`, cleaner)

	_, _, err := svc.Transfer(context.Background(),
		strings.NewReader("content"), strings.NewReader("style"))

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Style transfer failed", perr.Message)
	assert.Contains(t, perr.Logs, "model blew up")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "content_"))
		assert.False(t, strings.HasPrefix(e.Name(), "style_"))
		assert.False(t, strings.HasPrefix(e.Name(), "output_"))
	}
	assert.Empty(t, cleaner.paths)
}

func TestTransferProcessExitsNonZero(t *testing.T) {
	cleaner := &recordingCleaner{}
	svc, _ := newService(t, `echo "fatal: no CUDA"; exit 1`, cleaner)

	_, _, err := svc.Transfer(context.Background(),
		strings.NewReader("content"), strings.NewReader("style"))

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Style transfer failed", perr.Message)
	assert.Contains(t, perr.Logs, "fatal: no CUDA")
}

func TestTransferSuccessMarkerWithoutOutput(t *testing.T) {
	cleaner := &recordingCleaner{}
	svc, _ := newService(t, `echo "SUCCESS"`, cleaner)

	_, _, err := svc.Transfer(context.Background(),
		strings.NewReader("content"), strings.NewReader("style"))

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Style transfer produced no output", perr.Message)
	assert.Empty(t, cleaner.paths)
}

func TestTransferTimeout(t *testing.T) {
	cleaner := &recordingCleaner{}
	dir := t.TempDir()
	script := writeScript(t, dir, `sleep 5`)
	svc := New(discardLogger(), cleaner, "/bin/sh", script, dir, 100*time.Millisecond, 2*time.Minute)

	_, _, err := svc.Transfer(context.Background(),
		strings.NewReader("content"), strings.NewReader("style"))

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Style transfer timed out", perr.Message)
}
