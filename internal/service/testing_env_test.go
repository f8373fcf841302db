package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sentinel-Gate/storefront/internal/adapter/outbound/sqlite"
	"github.com/Sentinel-Gate/storefront/internal/domain/auth"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

type testEnv struct {
	store    *sqlite.Store
	users    *UserService
	products *ProductService
	orders   *OrderService
	tokens   *auth.TokenIssuer
}

// newTestEnv wires every service against a fresh SQLite database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "storefront.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := auth.NewTokenIssuer("test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	return &testEnv{
		store:    store,
		users:    NewUserService(store, tokens, logger),
		products: NewProductService(store, 2, logger),
		orders:   NewOrderService(store, store, logger),
		tokens:   tokens,
	}
}

func (e *testEnv) mustRegister(t *testing.T, name, email string) *user.User {
	t.Helper()
	sess, err := e.users.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("Register(%s) error = %v", email, err)
	}
	u, err := e.store.GetUser(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("GetUser(%s) error = %v", sess.ID, err)
	}
	return u
}
