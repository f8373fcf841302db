package actions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/Sentinel-Gate/storefront/internal/adapter/outbound/storage"
	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	kv    *storage.MemoryStore
	store *state.Store
	api   *fakeAPI
	coord *Coordinator
	spans *tracetest.SpanRecorder

	mu    sync.Mutex
	types []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{kv: storage.NewMemoryStore(), api: &fakeAPI{}, spans: tracetest.NewSpanRecorder()}
	h.store = state.NewStore(
		state.WithBridge(state.NewBridge(h.kv, discardLogger())),
		state.WithStoreLogger(discardLogger()),
	)
	h.store.Subscribe(func(a state.Action, _ state.State) {
		h.mu.Lock()
		h.types = append(h.types, a.Type)
		h.mu.Unlock()
	})
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(h.spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	h.coord = New(h.store, h.api, WithTracerProvider(tp), WithLogger(discardLogger()))
	return h
}

func (h *harness) transitions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.types...)
}

func TestLogin_ScenarioA(t *testing.T) {
	h := newHarness(t)
	h.api.login = func(c api.Credentials) (*user.Session, error) {
		if c.Email != "a@b.com" || c.Password != "x" {
			t.Errorf("unexpected credentials %+v", c)
		}
		return &user.Session{ID: "u1", Name: "A", Email: "a@b.com", Token: "tok"}, nil
	}

	sess, err := h.coord.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "tok" {
		t.Errorf("token = %q", sess.Token)
	}

	got := h.store.GetState().UserLogin
	if got.Loading || !got.Success || got.Data == nil || got.Data.Token != "tok" {
		t.Errorf("userLogin = %+v", got)
	}

	raw, found, _ := h.kv.Get(state.KeyUserInfo)
	if !found {
		t.Fatal("userInfo not persisted")
	}
	var persisted user.Session
	if err := json.Unmarshal(raw, &persisted); err != nil || persisted != *sess {
		t.Errorf("persisted userInfo = %s", raw)
	}

	want := []string{"USER_LOGIN_REQUEST", "USER_LOGIN_SUCCESS"}
	if !reflect.DeepEqual(h.transitions(), want) {
		t.Errorf("transitions = %v", h.transitions())
	}
}

func TestLogin_ScenarioB(t *testing.T) {
	h := newHarness(t)
	h.api.login = func(api.Credentials) (*user.Session, error) {
		return nil, &api.Error{Kind: api.KindValidation, Status: 400, Message: "Invalid email or password Validation"}
	}

	_, err := h.coord.Login(context.Background(), "bad", "")
	if !errors.Is(err, api.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got := h.store.GetState().UserLogin
	if got.Error != "Invalid email or password Validation" || got.Data != nil || got.Loading || got.Success {
		t.Errorf("userLogin = %+v", got)
	}
	if _, found, _ := h.kv.Get(state.KeyUserInfo); found {
		t.Error("failed login must not persist userInfo")
	}
	want := []string{"USER_LOGIN_REQUEST", "USER_LOGIN_FAIL"}
	if !reflect.DeepEqual(h.transitions(), want) {
		t.Errorf("transitions = %v", h.transitions())
	}
}

func TestRun_LoadingOnlyBetweenRequestAndTerminal(t *testing.T) {
	h := newHarness(t)
	h.api.listMyOrders = func() ([]order.Order, error) {
		if !h.store.GetState().OrderListMine.Loading {
			t.Error("expected loading while the call is in flight")
		}
		return []order.Order{{ID: "o1"}}, nil
	}

	var loading []bool
	h.store.Subscribe(func(a state.Action, s state.State) {
		loading = append(loading, s.OrderListMine.Loading)
	})

	if _, err := h.coord.OrderListMine(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loading, []bool{true, false}) {
		t.Errorf("loading sequence = %v", loading)
	}
}

func TestAbsentTokenIsStillSent(t *testing.T) {
	h := newHarness(t)
	h.api.listMyOrders = func() ([]order.Order, error) {
		return nil, &api.Error{Kind: api.KindUnauthorized, Status: 401, Message: "Not authorized, no token"}
	}

	_, err := h.coord.OrderListMine(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := h.api.seenTokens(); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("tokens = %q, want one empty token", got)
	}
	if msg := h.store.GetState().OrderListMine.Error; msg != "Not authorized, no token" {
		t.Errorf("error = %q", msg)
	}
}

func TestTokenPropagation(t *testing.T) {
	h := newHarness(t)
	h.api.login = func(api.Credentials) (*user.Session, error) {
		return &user.Session{ID: "u1", Token: "tok-1"}, nil
	}
	h.api.getUserDetails = func(string) (*user.Profile, error) { return &user.Profile{ID: "u1"}, nil }
	h.api.listMyOrders = func() ([]order.Order, error) { return []order.Order{}, nil }

	ctx := context.Background()
	if _, err := h.coord.Login(ctx, "a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.UserDetails(ctx, "profile"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.OrderListMine(ctx); err != nil {
		t.Fatal(err)
	}
	if got := h.api.seenTokens(); !reflect.DeepEqual(got, []string{"tok-1", "tok-1"}) {
		t.Errorf("tokens = %q", got)
	}
}

func TestRegister_AlsoSignsIn(t *testing.T) {
	h := newHarness(t)
	h.api.register = func(r api.Registration) (*user.Session, error) {
		return &user.Session{ID: "u2", Name: r.Name, Email: r.Email, Token: "tok-2"}, nil
	}

	if _, err := h.coord.Register(context.Background(), "Bo", "bo@x.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	want := []string{"USER_REGISTER_REQUEST", "USER_REGISTER_SUCCESS", "USER_LOGIN_SUCCESS"}
	if !reflect.DeepEqual(h.transitions(), want) {
		t.Errorf("transitions = %v", h.transitions())
	}
	if h.store.Token() != "tok-2" {
		t.Errorf("token = %q", h.store.Token())
	}
	if _, found, _ := h.kv.Get(state.KeyUserInfo); !found {
		t.Error("register must persist userInfo")
	}
}

func TestUpdateProfile_ScenarioC(t *testing.T) {
	h := newHarness(t)
	h.api.listProducts = func(api.ProductQuery) (*product.Page, error) {
		return &product.Page{Products: []product.Product{{ID: "p1"}}, Page: 1, Pages: 1}, nil
	}
	h.api.getProduct = func(_ context.Context, id string) (*product.Product, error) {
		return &product.Product{ID: id}, nil
	}
	h.api.updateProfile = func(u api.ProfileUpdate) (*user.Session, error) {
		return &user.Session{ID: "u1", Name: u.Name, Token: "fresh"}, nil
	}

	ctx := context.Background()
	if _, err := h.coord.ProductList(ctx, api.ProductQuery{}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.ProductDetails(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.UpdateProfile(ctx, api.ProfileUpdate{Name: "New"}); err != nil {
		t.Fatal(err)
	}

	s := h.store.GetState()
	if !reflect.DeepEqual(s.ProductList, state.RequestState[product.Page]{}) {
		t.Errorf("productList not reset: %+v", s.ProductList)
	}
	if !reflect.DeepEqual(s.ProductDetails, state.RequestState[product.Product]{}) {
		t.Errorf("productDetails not reset: %+v", s.ProductDetails)
	}
	if s.UserLogin.Data == nil || s.UserLogin.Data.Token != "fresh" || s.UserLogin.Data.Name != "New" {
		t.Errorf("session not replaced: %+v", s.UserLogin)
	}
	if !s.UserUpdateProfile.Success {
		t.Error("userUpdateProfile should report success")
	}
}

func TestProductUpdate_ResetsCatalog(t *testing.T) {
	h := newHarness(t)
	h.api.getProduct = func(_ context.Context, id string) (*product.Product, error) {
		return &product.Product{ID: id, Name: "Old"}, nil
	}
	h.api.updateProduct = func(id string, u api.ProductUpdate) (*product.Product, error) {
		return &product.Product{ID: id, Name: u.Name}, nil
	}

	ctx := context.Background()
	if _, err := h.coord.ProductDetails(ctx, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.ProductUpdate(ctx, "p1", api.ProductUpdate{Name: "New"}); err != nil {
		t.Fatal(err)
	}
	s := h.store.GetState()
	if s.ProductDetails.Data != nil {
		t.Error("productDetails should be reset after an update")
	}
	if s.ProductUpdate.Data == nil || s.ProductUpdate.Data.Name != "New" {
		t.Errorf("productUpdate = %+v", s.ProductUpdate)
	}
}

func TestProductDetails_ScenarioD(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t)
	release := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	started := make(chan string, 2)
	h.api.getProduct = func(ctx context.Context, id string) (*product.Product, error) {
		started <- id
		select {
		case <-release[id]:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &product.Product{ID: id}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, id := range []string{"first", "second"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = h.coord.ProductDetails(ctx, id)
		}(id)
	}
	<-started
	<-started

	// The later request resolves first; the earlier one arrives last.
	close(release["second"])
	waitFor(t, func() bool {
		d := h.store.GetState().ProductDetails.Data
		return d != nil && d.ID == "second"
	})
	close(release["first"])
	wg.Wait()

	got := h.store.GetState().ProductDetails
	if got.Data == nil || got.Data.ID != "first" {
		t.Errorf("expected the last arriving response to win, got %+v", got.Data)
	}

	var requests, successes int
	for _, typ := range h.transitions() {
		switch typ {
		case "PRODUCT_DETAILS_REQUEST":
			requests++
		case "PRODUCT_DETAILS_SUCCESS":
			successes++
		}
	}
	if requests != 2 || successes != 2 {
		t.Errorf("requests=%d successes=%d", requests, successes)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.api.login = func(api.Credentials) (*user.Session, error) {
		return &user.Session{ID: "u1", Token: "tok"}, nil
	}
	h.api.listMyOrders = func() ([]order.Order, error) { return []order.Order{{ID: "o1"}}, nil }
	h.api.getProduct = func(_ context.Context, id string) (*product.Product, error) {
		return &product.Product{ID: id, Price: 5, CountInStock: 3}, nil
	}

	ctx := context.Background()
	if _, err := h.coord.Login(ctx, "a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.OrderListMine(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := h.coord.AddToCart(ctx, "p1", 1); err != nil {
		t.Fatal(err)
	}

	h.coord.Logout(ctx)

	s := h.store.GetState()
	if !reflect.DeepEqual(s, state.Initial()) {
		t.Errorf("state after logout = %+v", s)
	}
	if h.store.Token() != "" {
		t.Error("token observable after logout")
	}
	for _, key := range state.PersistedKeys {
		if _, found, _ := h.kv.Get(key); found {
			t.Errorf("%s still persisted", key)
		}
	}

	// A second logout is harmless.
	h.coord.Logout(ctx)
	if !reflect.DeepEqual(h.store.GetState(), state.Initial()) {
		t.Error("second logout changed state")
	}
}

func TestAddToCart(t *testing.T) {
	h := newHarness(t)
	h.api.getProduct = func(_ context.Context, id string) (*product.Product, error) {
		switch id {
		case "missing":
			return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Message: "Product not found"}
		case "sold-out":
			return &product.Product{ID: id, Name: "Echo Dot", Price: 29.99, CountInStock: 0}, nil
		}
		return &product.Product{ID: id, Name: "Phone", Price: 10, CountInStock: 2}, nil
	}

	ctx := context.Background()
	item, err := h.coord.AddToCart(ctx, "p1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if item.Qty != 2 {
		t.Errorf("qty should be capped at stock, got %d", item.Qty)
	}

	if _, err := h.coord.AddToCart(ctx, "missing", 1); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := h.coord.AddToCart(ctx, "p1", 0); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := h.coord.AddToCart(ctx, "sold-out", 3); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("expected ErrOutOfStock, got %v", err)
	}

	cart := h.store.GetState().Cart
	if len(cart.Items) != 1 || cart.Items[0].CountInStock != 2 {
		t.Errorf("cart = %+v", cart)
	}
	if _, found, _ := h.kv.Get(state.KeyCartItems); !found {
		t.Error("cartItems not persisted")
	}

	h.coord.RemoveFromCart(ctx, "p1")
	if n := len(h.store.GetState().Cart.Items); n != 0 {
		t.Errorf("cart has %d items after remove", n)
	}
}

func TestOrderCreate_ClearsCart(t *testing.T) {
	h := newHarness(t)
	h.api.getProduct = func(_ context.Context, id string) (*product.Product, error) {
		return &product.Product{ID: id, Price: 20, CountInStock: 9}, nil
	}
	var sent api.NewOrder
	h.api.createOrder = func(in api.NewOrder) (*order.Order, error) {
		sent = in
		return &order.Order{ID: "o1", PaymentMethod: in.PaymentMethod}, nil
	}

	ctx := context.Background()
	if _, err := h.coord.AddToCart(ctx, "p1", 2); err != nil {
		t.Fatal(err)
	}
	addr := order.ShippingAddress{Address: "1 Main", City: "X", PostalCode: "1", Country: "Y"}
	h.coord.SaveShippingAddress(ctx, addr)
	h.coord.SavePaymentMethod(ctx, "PayPal")

	o, err := h.coord.OrderCreate(ctx, OrderFromCart(h.store.GetState().Cart))
	if err != nil {
		t.Fatal(err)
	}
	if o.ID != "o1" {
		t.Errorf("order = %+v", o)
	}
	if len(sent.Items) != 1 || sent.Items[0].Qty != 2 || sent.ShippingAddress != addr {
		t.Errorf("sent order = %+v", sent)
	}

	cart := h.store.GetState().Cart
	if len(cart.Items) != 0 || cart.PaymentMethod != "PayPal" {
		t.Errorf("cart after order = %+v", cart)
	}
}

func TestUserRemove_ResetsUserList(t *testing.T) {
	h := newHarness(t)
	h.api.deleteUser = func(id string) (string, error) { return id + " user deleted successfully", nil }

	msg, err := h.coord.UserRemove(context.Background(), "u9")
	if err != nil || msg != "u9 user deleted successfully" {
		t.Fatalf("UserRemove = %q, %v", msg, err)
	}
	want := []string{"USER_REMOVE_REQUEST", "USER_REMOVE_SUCCESS", "USER_LIST_RESET"}
	if !reflect.DeepEqual(h.transitions(), want) {
		t.Errorf("transitions = %v", h.transitions())
	}
}

func TestSpans(t *testing.T) {
	h := newHarness(t)
	h.api.login = func(api.Credentials) (*user.Session, error) {
		return nil, &api.Error{Kind: api.KindUnauthorized, Status: 401, Message: "Invalid email or password"}
	}
	h.api.listMyOrders = func() ([]order.Order, error) { return []order.Order{}, nil }

	ctx := context.Background()
	_, _ = h.coord.Login(ctx, "a@b.com", "wrong")
	_, _ = h.coord.OrderListMine(ctx)
	h.coord.Logout(ctx)

	ended := h.spans.Ended()
	if len(ended) != 3 {
		t.Fatalf("got %d spans, want 3", len(ended))
	}
	tests := []struct {
		name string
		code codes.Code
	}{
		{"Login", codes.Error},
		{"OrderListMine", codes.Ok},
		{"Logout", codes.Unset},
	}
	for i, tt := range tests {
		if ended[i].Name() != tt.name {
			t.Errorf("span %d name = %s, want %s", i, ended[i].Name(), tt.name)
		}
		if ended[i].Status().Code != tt.code {
			t.Errorf("span %s status = %v, want %v", tt.name, ended[i].Status().Code, tt.code)
		}
	}
	if desc := ended[0].Status().Description; desc != "Invalid email or password" {
		t.Errorf("login span description = %q", desc)
	}
}

func TestWithTokenProvider(t *testing.T) {
	h := newHarness(t)
	h.api.listMyOrders = func() ([]order.Order, error) { return nil, nil }
	coord := New(h.store, h.api, WithTokenProvider(func() string { return "override" }))

	if _, err := coord.OrderListMine(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := h.api.seenTokens(); !reflect.DeepEqual(got, []string{"override"}) {
		t.Errorf("tokens = %q", got)
	}
	if coord.Store() != h.store {
		t.Error("Store() should return the coordinator's store")
	}
}
