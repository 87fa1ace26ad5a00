package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout возвращает context, отменяемый по таймауту или при завершении теста.
// Используется для запросов к testcontainer-БД, чтобы зависший контейнер не блокировал прогон.
func ContextWithTimeout(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}
