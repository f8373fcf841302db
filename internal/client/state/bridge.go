package state

import (
	"encoding/json"
	"log/slog"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// Persisted keys.
const (
	KeyUserInfo        = "userInfo"
	KeyCartItems       = "cartItems"
	KeyShippingAddress = "shippingAddress"
	KeyPaymentMethod   = "paymentMethod"
)

// PersistedKeys lists every key the bridge may write.
var PersistedKeys = []string{KeyUserInfo, KeyCartItems, KeyShippingAddress, KeyPaymentMethod}

// Storage is a synchronous key-value store holding JSON values.
// Get reports found=false for a missing key.
type Storage interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Bridge mirrors selected slices into durable storage. It reads storage
// once, at Store construction, and afterwards only writes. Storage errors
// are logged and never surface to the caller.
type Bridge struct {
	storage Storage
	logger  *slog.Logger
}

// NewBridge creates a Bridge over storage.
func NewBridge(storage Storage, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{storage: storage, logger: logger}
}

// Hydrate seeds s with the persisted values. Absent or malformed values
// leave the defaults in place.
func (b *Bridge) Hydrate(s State) State {
	var sess user.Session
	if b.load(KeyUserInfo, &sess) && (sess.ID != "" || sess.Token != "") {
		s.UserLogin = RequestState[user.Session]{Data: &sess}
	}

	var items []CartItem
	if b.load(KeyCartItems, &items) && items != nil {
		s.Cart.Items = items
	}

	var addr order.ShippingAddress
	if b.load(KeyShippingAddress, &addr) {
		s.Cart.ShippingAddress = addr
	}

	var method string
	if b.load(KeyPaymentMethod, &method) {
		s.Cart.PaymentMethod = method
	}
	return s
}

func (b *Bridge) load(key string, dst any) bool {
	raw, found, err := b.storage.Get(key)
	if err != nil {
		b.logger.Warn("failed to read persisted state, using default", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		b.logger.Warn("malformed persisted state, using default", "key", key, "error", err)
		return false
	}
	return true
}

// mirror writes through the keys affected by a, which has just produced s.
func (b *Bridge) mirror(a Action, s State) {
	switch a.Type {
	case UserLogin.SuccessType():
		if s.UserLogin.Data != nil {
			b.save(KeyUserInfo, *s.UserLogin.Data)
		}
	case UserLogin.ResetType():
		b.remove(KeyUserInfo)
	case CartAddItem, CartRemoveItem, CartClearItems:
		b.save(KeyCartItems, s.Cart.Items)
	case CartSaveShippingAddress:
		b.save(KeyShippingAddress, s.Cart.ShippingAddress)
	case CartSavePaymentMethod:
		b.save(KeyPaymentMethod, s.Cart.PaymentMethod)
	case Cart.ResetType():
		b.remove(KeyCartItems)
		b.remove(KeyShippingAddress)
		b.remove(KeyPaymentMethod)
	}
}

func (b *Bridge) save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		b.logger.Warn("failed to encode state for persistence", "key", key, "error", err)
		return
	}
	if err := b.storage.Set(key, data); err != nil {
		b.logger.Warn("failed to persist state", "key", key, "error", err)
	}
}

func (b *Bridge) remove(key string) {
	if err := b.storage.Remove(key); err != nil {
		b.logger.Warn("failed to remove persisted state", "key", key, "error", err)
	}
}

// Clear removes every persisted key.
func (b *Bridge) Clear() {
	for _, key := range PersistedKeys {
		b.remove(key)
	}
}
