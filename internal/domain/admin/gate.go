// internal/domain/admin/gate.go
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/infrastructure/kv"
)

const flagValue = "true"

// Gate is the per-session admin flag. It is raised only by a successful
// login and has no expiry of its own.
type Gate struct {
	store kv.Store
	keys  kv.Keys
}

// NewGate creates a gate over store
func NewGate(store kv.Store, keys kv.Keys) *Gate {
	return &Gate{store: store, keys: keys}
}

// Login raises the flag
func (g *Gate) Login(ctx context.Context, session string) error {
	if err := g.store.Set(ctx, g.keys.IsAdmin(session), []byte(flagValue), 0); err != nil {
		return fmt.Errorf("failed to store admin flag: %w", err)
	}
	return nil
}

// Logout drops the flag; false is never persisted
func (g *Gate) Logout(ctx context.Context, session string) error {
	if err := g.store.Delete(ctx, g.keys.IsAdmin(session)); err != nil {
		return fmt.Errorf("failed to clear admin flag: %w", err)
	}
	return nil
}

// IsAdmin reports the flag; anything but "true" reads as false
func (g *Gate) IsAdmin(ctx context.Context, session string) (bool, error) {
	v, err := g.store.Get(ctx, g.keys.IsAdmin(session))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read admin flag: %w", err)
	}
	return string(v) == flagValue, nil
}
