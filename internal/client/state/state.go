// Package state is the client-side mirror of server state: request
// lifecycle slices, the cart, the pure root reducer, the Store that applies
// transitions one at a time, and the bridge that persists selected slices.
package state

import (
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// State is the whole client state. Values are immutable once published by
// the Store; reducers return modified copies.
type State struct {
	UserLogin         RequestState[user.Session]      `json:"userLogin"`
	UserRegister      RequestState[user.Session]      `json:"userRegister"`
	UserDetails       RequestState[user.Profile]      `json:"userDetails"`
	UserUpdateProfile RequestState[user.Session]      `json:"userUpdateProfile"`
	UserUpdate        RequestState[user.Profile]      `json:"userUpdate"`
	UserList          RequestState[[]user.Profile]    `json:"userList"`
	UserRemove        RequestState[string]            `json:"userRemove"`
	ProductList       RequestState[product.Page]      `json:"productList"`
	ProductDetails    RequestState[product.Product]   `json:"productDetails"`
	ProductTopList    RequestState[[]product.Product] `json:"productTopList"`
	ProductCreate     RequestState[product.Product]   `json:"productCreate"`
	ProductUpdate     RequestState[product.Product]   `json:"productUpdate"`
	ProductDelete     RequestState[string]            `json:"productDelete"`
	ProductReview     RequestState[string]            `json:"productReview"`
	Cart              CartState                       `json:"cart"`
	OrderCreate       RequestState[order.Order]       `json:"orderCreate"`
	OrderDetails      RequestState[order.Order]       `json:"orderDetails"`
	OrderListMine     RequestState[[]order.Order]     `json:"orderListMine"`
	OrderList         RequestState[[]order.Order]     `json:"orderList"`
	OrderDeliver      RequestState[order.Order]       `json:"orderDeliver"`
}

// SliceID names one slice of State.
type SliceID string

// Slice identifiers.
const (
	SliceUserLogin         SliceID = "userLogin"
	SliceUserRegister      SliceID = "userRegister"
	SliceUserDetails       SliceID = "userDetails"
	SliceUserUpdateProfile SliceID = "userUpdateProfile"
	SliceUserUpdate        SliceID = "userUpdate"
	SliceUserList          SliceID = "userList"
	SliceUserRemove        SliceID = "userRemove"
	SliceProductList       SliceID = "productList"
	SliceProductDetails    SliceID = "productDetails"
	SliceProductTopList    SliceID = "productTopList"
	SliceProductCreate     SliceID = "productCreate"
	SliceProductUpdate     SliceID = "productUpdate"
	SliceProductDelete     SliceID = "productDelete"
	SliceProductReview     SliceID = "productReview"
	SliceCart              SliceID = "cart"
	SliceOrderCreate       SliceID = "orderCreate"
	SliceOrderDetails      SliceID = "orderDetails"
	SliceOrderListMine     SliceID = "orderListMine"
	SliceOrderList         SliceID = "orderList"
	SliceOrderDeliver      SliceID = "orderDeliver"
)

type sliceDef struct {
	id       SliceID
	resource Resource
	reduce   func(s *State, a Action)
}

func requestSlice[T any](id SliceID, r Resource, field func(*State) *RequestState[T]) sliceDef {
	return sliceDef{
		id:       id,
		resource: r,
		reduce: func(s *State, a Action) {
			f := field(s)
			*f = reduceRequest(*f, r, a)
		},
	}
}

// registry lists the slices every transition is offered to, in order.
var registry = []sliceDef{
	requestSlice(SliceUserLogin, UserLogin, func(s *State) *RequestState[user.Session] { return &s.UserLogin }),
	requestSlice(SliceUserRegister, UserRegister, func(s *State) *RequestState[user.Session] { return &s.UserRegister }),
	requestSlice(SliceUserDetails, UserDetails, func(s *State) *RequestState[user.Profile] { return &s.UserDetails }),
	requestSlice(SliceUserUpdateProfile, UserUpdateProfile, func(s *State) *RequestState[user.Session] { return &s.UserUpdateProfile }),
	requestSlice(SliceUserUpdate, UserUpdate, func(s *State) *RequestState[user.Profile] { return &s.UserUpdate }),
	requestSlice(SliceUserList, UserList, func(s *State) *RequestState[[]user.Profile] { return &s.UserList }),
	requestSlice(SliceUserRemove, UserRemove, func(s *State) *RequestState[string] { return &s.UserRemove }),
	requestSlice(SliceProductList, ProductList, func(s *State) *RequestState[product.Page] { return &s.ProductList }),
	requestSlice(SliceProductDetails, ProductDetails, func(s *State) *RequestState[product.Product] { return &s.ProductDetails }),
	requestSlice(SliceProductTopList, ProductTopList, func(s *State) *RequestState[[]product.Product] { return &s.ProductTopList }),
	requestSlice(SliceProductCreate, ProductCreate, func(s *State) *RequestState[product.Product] { return &s.ProductCreate }),
	requestSlice(SliceProductUpdate, ProductUpdate, func(s *State) *RequestState[product.Product] { return &s.ProductUpdate }),
	requestSlice(SliceProductDelete, ProductDelete, func(s *State) *RequestState[string] { return &s.ProductDelete }),
	requestSlice(SliceProductReview, ProductCreateReview, func(s *State) *RequestState[string] { return &s.ProductReview }),
	{id: SliceCart, resource: Cart, reduce: func(s *State, a Action) { s.Cart = reduceCart(s.Cart, a) }},
	requestSlice(SliceOrderCreate, OrderCreate, func(s *State) *RequestState[order.Order] { return &s.OrderCreate }),
	requestSlice(SliceOrderDetails, OrderDetails, func(s *State) *RequestState[order.Order] { return &s.OrderDetails }),
	requestSlice(SliceOrderListMine, OrderListMine, func(s *State) *RequestState[[]order.Order] { return &s.OrderListMine }),
	requestSlice(SliceOrderList, OrderList, func(s *State) *RequestState[[]order.Order] { return &s.OrderList }),
	requestSlice(SliceOrderDeliver, OrderDeliver, func(s *State) *RequestState[order.Order] { return &s.OrderDeliver }),
}

// Initial returns the default state: every slice idle and an empty cart.
func Initial() State {
	return State{Cart: defaultCart()}
}

// Reduce is the root reducer. It offers a to every slice and returns the
// resulting state. Transitions no slice recognizes return s unchanged.
func Reduce(s State, a Action) State {
	for _, def := range registry {
		def.reduce(&s, a)
	}
	return s
}

// Slices returns the registered slice ids in registry order.
func Slices() []SliceID {
	ids := make([]SliceID, len(registry))
	for i, def := range registry {
		ids[i] = def.id
	}
	return ids
}

// ResourceOf returns the resource prefix of slice id.
func ResourceOf(id SliceID) (Resource, bool) {
	for _, def := range registry {
		if def.id == id {
			return def.resource, true
		}
	}
	return "", false
}
