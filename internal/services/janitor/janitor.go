// Package janitor удаляет временные файлы с отложенной задержкой.
// Единственная работа, переживающая запрос: успешный перенос стиля
// оставляет выходной файл на диске ещё две минуты.
package janitor

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/artechoes/artechoes/internal/lib/sl"
)

// Janitor планирует отложенное удаление файлов.
type Janitor struct {
	log *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New создает новый экземпляр Janitor.
func New(log *slog.Logger) *Janitor {
	return &Janitor{
		log:    log,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule ставит файлы в очередь на удаление через delay.
// Повторное планирование того же пути сдвигает таймер.
func (j *Janitor) Schedule(delay time.Duration, paths ...string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, path := range paths {
		if t, ok := j.timers[path]; ok {
			t.Stop()
		}
		p := path
		j.timers[p] = time.AfterFunc(delay, func() {
			j.remove(p)
		})
	}
}

// Shutdown останавливает таймеры и удаляет все запланированные файлы сразу.
func (j *Janitor) Shutdown() {
	j.mu.Lock()
	paths := make([]string, 0, len(j.timers))
	for path, t := range j.timers {
		t.Stop()
		paths = append(paths, path)
	}
	j.timers = make(map[string]*time.Timer)
	j.mu.Unlock()

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			j.log.Error("failed to remove scheduled file", slog.String("path", path), sl.Err(err))
		}
	}
}

func (j *Janitor) remove(path string) {
	j.mu.Lock()
	delete(j.timers, path)
	j.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		j.log.Error("failed to remove scheduled file", slog.String("path", path), sl.Err(err))
	}
}
