// Package classifier запускает внешний скрипт классификации изображений.
package classifier

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/artechoes/artechoes/internal/lib/sl"
)

// Runner вызывает скрипт классификатора как подпроцесс.
type Runner struct {
	log       *slog.Logger
	pythonBin string
	script    string
	timeout   time.Duration
}

// New создает новый экземпляр Runner.
func New(log *slog.Logger, pythonBin, script string, timeout time.Duration) *Runner {
	return &Runner{
		log:       log,
		pythonBin: pythonBin,
		script:    script,
		timeout:   timeout,
	}
}

// Classify запускает классификатор для файла imagePath и возвращает метку
// категории из stdout. Пустой вывод считается ошибкой.
func (r *Runner) Classify(ctx context.Context, imagePath string) (string, error) {
	const op = "classifier.Classify"

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.pythonBin, r.script, imagePath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.log.Error("classifier process failed",
			slog.String("op", op),
			slog.String("stderr", stderr.String()),
			sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	label := strings.TrimSpace(stdout.String())
	if label == "" {
		return "", fmt.Errorf("%s: empty classifier output", op)
	}
	return label, nil
}
