package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"digimun_backend/internal/repository"
	"digimun_backend/internal/testutil"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestServices(t *testing.T, opts Options) *Services {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewServices(repository.NewRepositories(db), opts)
}

func mustSnapshot(t *testing.T, s *Services) *Snapshot {
	t.Helper()
	snap, err := s.Session.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return snap
}
