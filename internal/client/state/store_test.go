package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/Sentinel-Gate/storefront/internal/adapter/outbound/storage"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, kv Storage) *Store {
	t.Helper()
	return NewStore(
		WithBridge(NewBridge(kv, testLogger())),
		WithStoreLogger(testLogger()),
	)
}

func TestStore_DispatchNotifiesInOrder(t *testing.T) {
	s := NewStore(WithStoreLogger(testLogger()))

	var got []string
	unsubscribe := s.Subscribe(func(a Action, _ State) {
		got = append(got, a.Type)
	})

	s.Dispatch(ProductTopList.Request())
	s.Dispatch(ProductTopList.Success([]product.Product{{ID: "p1"}}))
	unsubscribe()
	unsubscribe()
	s.Dispatch(ProductTopList.Reset())

	want := []string{"PRODUCT_TOP_LIST_REQUEST", "PRODUCT_TOP_LIST_SUCCESS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("notifications = %v, want %v", got, want)
	}
}

func TestStore_ListenerMayReadState(t *testing.T) {
	s := NewStore(WithStoreLogger(testLogger()))

	var loading []bool
	s.Subscribe(func(_ Action, _ State) {
		loading = append(loading, s.GetState().ProductDetails.Loading)
	})
	s.Dispatch(ProductDetails.Request())
	s.Dispatch(ProductDetails.Fail("boom"))

	if !reflect.DeepEqual(loading, []bool{true, false}) {
		t.Errorf("loading = %v", loading)
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStore(WithStoreLogger(testLogger()))

	var (
		mu   sync.Mutex
		seen int
	)
	s.Subscribe(func(Action, State) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(CartAddItemAction(CartItem{ProductID: fmt.Sprintf("p%d", i), Qty: 1}))
		}(i)
	}
	wg.Wait()

	if n := len(s.GetState().Cart.Items); n != workers {
		t.Errorf("cart has %d items, want %d", n, workers)
	}
	if seen != workers {
		t.Errorf("listener saw %d transitions, want %d", seen, workers)
	}
}

func TestBridge_RoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)

	sess := user.Session{ID: "u1", Name: "Ann", Email: "a@b.com", Token: "tok"}
	s.Dispatch(UserLogin.Success(sess))
	s.Dispatch(CartAddItemAction(CartItem{ProductID: "p1", Name: "Phone", Price: 599.99, CountInStock: 7, Qty: 2}))
	s.Dispatch(CartAddItemAction(CartItem{ProductID: "p2", Name: "Mouse", Price: 49.99, CountInStock: 3, Qty: 1}))
	s.Dispatch(CartRemoveItemAction("p2"))
	s.Dispatch(CartSaveShippingAddressAction(order.ShippingAddress{Address: "1 Main", City: "X", PostalCode: "1", Country: "Y"}))
	s.Dispatch(CartSavePaymentMethodAction("PayPal"))
	prior := s.GetState()

	fresh := newTestStore(t, kv)
	got := fresh.GetState()

	if got.UserLogin.Data == nil || *got.UserLogin.Data != sess {
		t.Errorf("userInfo not restored: %+v", got.UserLogin)
	}
	if !reflect.DeepEqual(got.Cart, prior.Cart) {
		t.Errorf("cart not restored:\n got %+v\nwant %+v", got.Cart, prior.Cart)
	}
	if fresh.Token() != "tok" {
		t.Errorf("token = %q", fresh.Token())
	}
}

func TestBridge_HydrateDefaults(t *testing.T) {
	tests := []struct {
		name  string
		seed  map[string]string
		warns bool
	}{
		{name: "empty storage"},
		{name: "empty user object", seed: map[string]string{KeyUserInfo: `{}`}},
		{name: "malformed user", seed: map[string]string{KeyUserInfo: `{"id":`}, warns: true},
		{name: "wrong cart shape", seed: map[string]string{KeyCartItems: `{"product":"p1"}`}, warns: true},
		{name: "null cart", seed: map[string]string{KeyCartItems: `null`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			for k, v := range tt.seed {
				kv.SetRaw(k, []byte(v))
			}
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			s := NewStore(WithBridge(NewBridge(kv, logger)), WithStoreLogger(testLogger()))

			if !reflect.DeepEqual(s.GetState(), Initial()) {
				t.Errorf("expected defaults, got %+v", s.GetState())
			}
			if warned := strings.Contains(logs.String(), "level=WARN"); warned != tt.warns {
				t.Errorf("warned = %v, want %v; logs: %s", warned, tt.warns, logs.String())
			}
		})
	}
}

type failingStorage struct{}

func (failingStorage) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (failingStorage) Set(string, []byte) error         { return errors.New("disk gone") }
func (failingStorage) Remove(string) error              { return errors.New("disk gone") }

func TestBridge_StorageFailuresAreNotFatal(t *testing.T) {
	s := newTestStore(t, failingStorage{})
	s.Dispatch(UserLogin.Success(user.Session{ID: "u1", Token: "t"}))
	s.Dispatch(CartAddItemAction(CartItem{ProductID: "p1", Qty: 1}))
	s.Teardown()

	if !reflect.DeepEqual(s.GetState(), Initial()) {
		t.Error("teardown must still reset state when storage fails")
	}
}

func TestStore_LogoutSequence(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)

	s.Dispatch(UserLogin.Success(user.Session{ID: "u1", Token: "tok"}))
	s.Dispatch(UserRegister.Success(user.Session{ID: "u1", Token: "tok"}))
	s.Dispatch(UserDetails.Success(user.Profile{ID: "u1"}))
	s.Dispatch(UserList.Success([]user.Profile{{ID: "u1"}}))
	s.Dispatch(OrderListMine.Success([]order.Order{{ID: "o1"}}))
	s.Dispatch(OrderDeliver.Success(order.Order{ID: "o1", IsDelivered: true}))
	s.Dispatch(CartAddItemAction(CartItem{ProductID: "p1", Qty: 1}))

	var types []string
	s.Subscribe(func(a Action, _ State) { types = append(types, a.Type) })

	s.ResetGroup(SessionGroup)
	mid := s.GetState()
	if mid.UserLogin.Data != nil || mid.OrderListMine.Data != nil || mid.UserList.Data != nil ||
		mid.UserDetails.Data != nil || mid.UserRegister.Data != nil || mid.OrderDeliver.Data != nil {
		t.Errorf("session group not reset: %+v", mid)
	}
	if _, found, _ := kv.Get(KeyUserInfo); found {
		t.Error("userInfo should be removed when the session resets")
	}

	s.Teardown()
	s.Teardown()

	if !reflect.DeepEqual(s.GetState(), Initial()) {
		t.Error("teardown did not restore defaults")
	}
	if s.Token() != "" {
		t.Error("token still observable after logout")
	}
	for _, key := range PersistedKeys {
		if _, found, _ := kv.Get(key); found {
			t.Errorf("%s still persisted after logout", key)
		}
	}

	wantPrefix := []string{"USER_LOGIN_RESET", "ORDER_LIST_ME_RESET", "USER_DETAILS_RESET",
		"USER_LIST_RESET", "USER_REGISTER_RESET", "ORDER_DELIVER_RESET", TeardownType, TeardownType}
	if !reflect.DeepEqual(types, wantPrefix) {
		t.Errorf("transitions = %v", types)
	}
}

func TestBridge_WritesOnlyDesignatedTransitions(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := newTestStore(t, kv)

	s.Dispatch(UserLogin.Request())
	s.Dispatch(UserLogin.Fail("Invalid email or password"))
	s.Dispatch(ProductList.Success(product.Page{}))
	if keys, _ := kv.Keys(); len(keys) != 0 {
		t.Errorf("unexpected persisted keys %v", keys)
	}

	s.Dispatch(CartClearItemsAction())
	raw, found, err := kv.Get(KeyCartItems)
	if err != nil || !found {
		t.Fatalf("cartItems not written: found=%v err=%v", found, err)
	}
	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil || items == nil || len(items) != 0 {
		t.Errorf("cartItems = %s", raw)
	}
}
