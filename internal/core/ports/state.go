package ports

import "context"

// DismissalStore persists the ids of acknowledged reminders under a per-user key.
type DismissalStore interface {
	LoadDismissed(ctx context.Context, key string) ([]uint64, error)
	SaveDismissed(ctx context.Context, key string, ids []uint64) error
}

// SessionStore keeps the signed-in email between CLI runs. An empty email means signed out.
type SessionStore interface {
	LoadSession(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, email string) error
}
