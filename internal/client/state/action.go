package state

// Action is one state transition. Type is a stable identifier such as
// "USER_LOGIN_SUCCESS". Payload carries the SUCCESS data or a cart
// mutation; Error carries the FAIL message.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Resource is the prefix shared by the four lifecycle transitions of one
// request-backed slice.
type Resource string

// Resource prefixes.
const (
	UserLogin         Resource = "USER_LOGIN"
	UserRegister      Resource = "USER_REGISTER"
	UserDetails       Resource = "USER_DETAILS"
	UserUpdateProfile Resource = "USER_UPDATE_PROFILE"
	UserUpdate        Resource = "USER_UPDATE"
	UserList          Resource = "USER_LIST"
	UserRemove        Resource = "USER_REMOVE"

	ProductList         Resource = "PRODUCT_LIST"
	ProductDetails      Resource = "PRODUCT_DETAILS"
	ProductTopList      Resource = "PRODUCT_TOP_LIST"
	ProductCreate       Resource = "PRODUCT_CREATE"
	ProductUpdate       Resource = "PRODUCT_UPDATE"
	ProductDelete       Resource = "PRODUCT_DELETE"
	ProductCreateReview Resource = "PRODUCT_CREATE_REVIEW"

	OrderCreate   Resource = "ORDER_CREATE"
	OrderDetails  Resource = "ORDER_DETAILS"
	OrderListMine Resource = "ORDER_LIST_ME"
	OrderList     Resource = "ORDER_LIST"
	OrderDeliver  Resource = "ORDER_DELIVER"

	Cart Resource = "CART"
)

// Cart transitions. CART_RESET is Cart.ResetType().
const (
	CartAddItem             = "CART_ADD_ITEM"
	CartRemoveItem          = "CART_REMOVE_ITEM"
	CartSaveShippingAddress = "CART_SAVE_SHIPPING_ADDRESS"
	CartSavePaymentMethod   = "CART_SAVE_PAYMENT_METHOD"
	CartClearItems          = "CART_CLEAR_ITEMS"
)

// TeardownType is delivered to subscribers after Store.Teardown. It never
// passes through the reducers.
const TeardownType = "@@TEARDOWN"

func (r Resource) RequestType() string { return string(r) + "_REQUEST" }
func (r Resource) SuccessType() string { return string(r) + "_SUCCESS" }
func (r Resource) FailType() string    { return string(r) + "_FAIL" }
func (r Resource) ResetType() string   { return string(r) + "_RESET" }

// Request returns the transition that marks a call in flight.
func (r Resource) Request() Action {
	return Action{Type: r.RequestType()}
}

// Success returns the transition carrying a call's result.
func (r Resource) Success(payload any) Action {
	return Action{Type: r.SuccessType(), Payload: payload}
}

// Fail returns the transition carrying a call's failure message.
func (r Resource) Fail(message string) Action {
	return Action{Type: r.FailType(), Error: message}
}

// Reset returns the transition that restores the slice default.
func (r Resource) Reset() Action {
	return Action{Type: r.ResetType()}
}
