package state

// InvalidationGroup is a named set of slices reset together.
type InvalidationGroup struct {
	Name   string
	Slices []SliceID
}

// SessionGroup holds everything derived from the signed-in account. It is
// reset on logout so nothing of the previous session stays observable.
var SessionGroup = InvalidationGroup{
	Name: "session",
	Slices: []SliceID{
		SliceUserLogin,
		SliceOrderListMine,
		SliceUserDetails,
		SliceUserList,
		SliceUserRegister,
		SliceOrderDeliver,
	},
}

// CatalogGroup holds cached catalogue reads. It is reset when a product or
// the caller's profile changes.
var CatalogGroup = InvalidationGroup{
	Name: "catalog",
	Slices: []SliceID{
		SliceProductList,
		SliceProductDetails,
	},
}

// Actions returns the reset transition of every slice in g, in order.
// Unknown slice ids are skipped.
func (g InvalidationGroup) Actions() []Action {
	actions := make([]Action, 0, len(g.Slices))
	for _, id := range g.Slices {
		if r, ok := ResourceOf(id); ok {
			actions = append(actions, r.Reset())
		}
	}
	return actions
}
