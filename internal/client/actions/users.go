package actions

import (
	"context"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// Login signs in. On success the session lands in the userLogin slice and
// is persisted under userInfo.
func (c *Coordinator) Login(ctx context.Context, email, password string) (*user.Session, error) {
	return run(ctx, c, "Login", state.UserLogin, func(ctx context.Context, _ string) (*user.Session, error) {
		return c.api.Login(ctx, api.Credentials{Email: email, Password: password})
	})
}

// Register creates an account and signs it in.
func (c *Coordinator) Register(ctx context.Context, name, email, password string) (*user.Session, error) {
	sess, err := run(ctx, c, "Register", state.UserRegister, func(ctx context.Context, _ string) (*user.Session, error) {
		return c.api.Register(ctx, api.Registration{Name: name, Email: email, Password: password})
	})
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.UserLogin.Success(sess))
	return sess, nil
}

// Logout clears the session group, then tears the whole store down,
// removing every persisted key. It makes no server call.
func (c *Coordinator) Logout(ctx context.Context) {
	_, span := c.span(ctx, "Logout")
	defer span.End()

	c.store.ResetGroup(state.SessionGroup)
	c.store.Teardown()
}

// UserDetails fetches a user into the userDetails slice. id "profile" is
// the caller's own account.
func (c *Coordinator) UserDetails(ctx context.Context, id string) (*user.Profile, error) {
	return run(ctx, c, "UserDetails", state.UserDetails, func(ctx context.Context, token string) (*user.Profile, error) {
		return c.api.GetUserDetails(ctx, id, token)
	})
}

// UpdateProfile changes the caller's account. The returned session, with
// its fresh token, replaces the current one and the catalogue caches are
// dropped.
func (c *Coordinator) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*user.Session, error) {
	sess, err := run(ctx, c, "UpdateProfile", state.UserUpdateProfile, func(ctx context.Context, token string) (*user.Session, error) {
		return c.api.UpdateProfile(ctx, upd, token)
	})
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.UserLogin.Success(sess))
	c.store.ResetGroup(state.CatalogGroup)
	return sess, nil
}

// UserList fetches every account. Admin only.
func (c *Coordinator) UserList(ctx context.Context) ([]user.Profile, error) {
	return run(ctx, c, "UserList", state.UserList, func(ctx context.Context, token string) ([]user.Profile, error) {
		return c.api.ListUsers(ctx, token)
	})
}

// UserRemove deletes account id. Admin only. The user list is stale
// afterwards and is reset.
func (c *Coordinator) UserRemove(ctx context.Context, id string) (string, error) {
	msg, err := run(ctx, c, "UserRemove", state.UserRemove, func(ctx context.Context, token string) (string, error) {
		return c.api.DeleteUser(ctx, id, token)
	})
	if err != nil {
		return "", err
	}
	c.store.Dispatch(state.UserList.Reset())
	return msg, nil
}

// UserUpdate applies an administrator's change to account id and shows
// the result in userDetails.
func (c *Coordinator) UserUpdate(ctx context.Context, id string, upd api.UserUpdate) (*user.Profile, error) {
	p, err := run(ctx, c, "UserUpdate", state.UserUpdate, func(ctx context.Context, token string) (*user.Profile, error) {
		return c.api.UpdateUser(ctx, id, upd, token)
	})
	if err != nil {
		return nil, err
	}
	c.store.Dispatch(state.UserDetails.Success(p))
	c.store.Dispatch(state.UserList.Reset())
	return p, nil
}
