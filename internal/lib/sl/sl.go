// Package sl дополняет slog короткими помощниками для атрибутов,
// которые повторяются почти в каждой записи лога приложения.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы записи об
// ошибках в сервисах и хэндлерах выглядели единообразно:
//
//	log.Error("upload failed", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
