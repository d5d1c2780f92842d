// Package styletransfer оркестрирует внешний скрипт переноса стиля.
package styletransfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/artechoes/artechoes/internal/lib/sl"
)

// PipelineError несёт сообщение об ошибке вместе с логами подпроцесса,
// которые возвращаются клиенту в теле ответа.
type PipelineError struct {
	Message string
	Logs    []string
}

func (e *PipelineError) Error() string {
	return e.Message
}

// Cleaner планирует отложенное удаление файлов.
type Cleaner interface {
	Schedule(delay time.Duration, paths ...string)
}

// Service запускает перенос стиля и управляет временными файлами.
type Service struct {
	log          *slog.Logger
	cleaner      Cleaner
	pythonBin    string
	script       string
	scratchDir   string
	timeout      time.Duration
	cleanupDelay time.Duration
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, cleaner Cleaner, pythonBin, script, scratchDir string,
	timeout, cleanupDelay time.Duration) *Service {
	return &Service{
		log:          log,
		cleaner:      cleaner,
		pythonBin:    pythonBin,
		script:       script,
		scratchDir:   scratchDir,
		timeout:      timeout,
		cleanupDelay: cleanupDelay,
	}
}

// Transfer сохраняет оба изображения во временный каталог, запускает скрипт
// и возвращает путь к результату вместе с собранными логами. При неудаче все
// три файла удаляются сразу; при успехе все три ставятся в очередь на
// отложенное удаление, чтобы клиент успел забрать результат.
func (s *Service) Transfer(ctx context.Context, content, style io.Reader) (string, []string, error) {
	const op = "styletransfer.Transfer"

	// файлы ключуются текущим временем; одновременные запросы в одну
	// миллисекунду перезапишут друг друга
	ts := time.Now().UnixMilli()
	contentPath := filepath.Join(s.scratchDir, fmt.Sprintf("content_%d.jpg", ts))
	stylePath := filepath.Join(s.scratchDir, fmt.Sprintf("style_%d.jpg", ts))
	outputPath := filepath.Join(s.scratchDir, fmt.Sprintf("output_%d.png", ts))

	if err := saveFile(contentPath, content); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := saveFile(stylePath, style); err != nil {
		removeAll(contentPath)
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.pythonBin, s.script, contentPath, stylePath, outputPath)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	runErr := cmd.Run()
	logs := splitLogs(combined.String())

	if runErr != nil {
		removeAll(contentPath, stylePath, outputPath)
		message := "Style transfer failed"
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			message = "Style transfer timed out"
		}
		s.log.Error("style transfer process failed", slog.String("op", op), sl.Err(runErr))
		return "", nil, &PipelineError{Message: message, Logs: logs}
	}

	// успех только при явном маркере от скрипта
	if !containsSuccess(logs) {
		removeAll(contentPath, stylePath, outputPath)
		return "", nil, &PipelineError{Message: "Style transfer failed", Logs: logs}
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		removeAll(contentPath, stylePath, outputPath)
		return "", nil, &PipelineError{Message: "Style transfer produced no output", Logs: logs}
	}

	s.cleaner.Schedule(s.cleanupDelay, contentPath, stylePath, outputPath)
	return outputPath, logs, nil
}

func saveFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

func splitLogs(output string) []string {
	logs := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			logs = append(logs, line)
		}
	}
	return logs
}

func containsSuccess(logs []string) bool {
	for _, line := range logs {
		if strings.TrimSpace(line) == "SUCCESS" {
			return true
		}
	}
	return false
}

func removeAll(paths ...string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
