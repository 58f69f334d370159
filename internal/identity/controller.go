package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/schema"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// Controller owns the session's identity state and drives the
// guest/authenticated transitions over the store. A transition either fully
// applies or leaves both the store and the in-memory identity untouched;
// write ordering guarantees a non-empty document always survives somewhere.
type Controller struct {
	store    store.Store
	identity *types.Identity // nil while in guest mode
}

// NewController creates a controller in guest mode.
func NewController(s store.Store) *Controller {
	return &Controller{store: s}
}

// Restore loads the persisted identity state at startup. A corrupted slot
// has already been cleared by the store and reads as guest.
func (c *Controller) Restore(ctx context.Context) error {
	ident, err := c.store.LoadIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore identity: %w", err)
	}
	c.identity = ident
	return nil
}

// Identity returns the active identity, or nil in guest mode.
func (c *Controller) Identity() *types.Identity {
	return c.identity
}

// Authenticated reports whether the session holds an identity.
func (c *Controller) Authenticated() bool {
	return c.identity != nil
}

// Scope returns the storage scope for the current identity state.
func (c *Controller) Scope() store.Scope {
	return store.ScopeOf(c.Authenticated())
}

// SignIn performs the guest-to-authenticated transition for an identity the
// authentication provider has already verified. When the account scope holds
// no document (or only a default one), the guest document and template are
// transferred into the account scope and the guest slots cleared. When the
// account already holds real data, the guest copy is left in place untouched:
// two non-empty documents are never merged or overwritten. Returns whether
// guest data was migrated.
func (c *Controller) SignIn(ctx context.Context, ident *types.Identity) (bool, error) {
	if ident == nil {
		return false, fmt.Errorf("sign-in requires an identity")
	}

	migrated, err := c.copyGuestData(ctx)
	if err != nil {
		// Identity stays guest. Writes so far only added copies, never
		// removed the last one, so the guest slots are intact.
		return false, err
	}

	if err := c.store.SaveIdentity(ctx, ident); err != nil {
		// Same guarantee: the guest slots still hold the document, so a
		// retry sees the pre-transition state (plus a harmless account
		// copy of the same data).
		return false, fmt.Errorf("failed to persist identity: %w", err)
	}

	// The transition is committed; the guest slots are now residue. A
	// failed clear leaves a duplicate, never a loss.
	if migrated {
		c.clearGuestSlots(ctx)
	}
	if err := c.store.SaveBannerDismissed(ctx, true); err != nil {
		// Advisory UI state only; the transition itself has succeeded.
		log.Printf("[identity] failed to dismiss guest banner: %v", err)
	}

	c.identity = ident
	return migrated, nil
}

// copyGuestData applies the transfer half of the transfer-and-clear policy.
// It only ever adds copies; the guest slots are cleared separately once the
// whole transition has committed, so a failure at any point here leaves the
// guest document where it was.
func (c *Controller) copyGuestData(ctx context.Context) (bool, error) {
	accountRaw, err := c.store.Load(ctx, store.ScopeAccount, store.KindDocument)
	if err != nil {
		return false, fmt.Errorf("failed to read account document: %w", err)
	}
	if accountRaw != nil && !schema.Migrate(accountRaw).IsEmpty() {
		// Account holds real data; leave the guest copy stranded in guest
		// scope rather than silently overwriting or merging.
		return false, nil
	}

	guestRaw, err := c.store.Load(ctx, store.ScopeGuest, store.KindDocument)
	if err != nil {
		return false, fmt.Errorf("failed to read guest document: %w", err)
	}
	if guestRaw == nil {
		return false, nil
	}

	if err := c.store.Save(ctx, store.ScopeAccount, store.KindDocument, guestRaw); err != nil {
		return false, fmt.Errorf("failed to transfer guest document: %w", err)
	}

	guestTmpl, err := c.store.Load(ctx, store.ScopeGuest, store.KindTemplate)
	if err != nil {
		return false, fmt.Errorf("failed to read guest template: %w", err)
	}
	if guestTmpl != nil {
		if err := c.store.Save(ctx, store.ScopeAccount, store.KindTemplate, guestTmpl); err != nil {
			return false, fmt.Errorf("failed to transfer guest template: %w", err)
		}
	}
	return true, nil
}

// clearGuestSlots removes the guest document and template after a committed
// transfer. Failures are logged only: the account scope already holds the
// data, so leftover guest copies are duplicates, not losses.
func (c *Controller) clearGuestSlots(ctx context.Context) {
	if err := c.store.Clear(ctx, store.ScopeGuest, store.KindDocument); err != nil {
		log.Printf("[identity] failed to clear guest document after transfer: %v", err)
	}
	if err := c.store.Clear(ctx, store.ScopeGuest, store.KindTemplate); err != nil {
		log.Printf("[identity] failed to clear guest template after transfer: %v", err)
	}
}

// SignOut performs the authenticated-to-guest transition. The working
// document and template are snapshotted into the guest scope verbatim before
// anything is cleared, so no work is lost merely by signing out. A snapshot
// failure aborts the transition with the identity state unchanged.
func (c *Controller) SignOut(ctx context.Context, doc *types.Document, tmpl types.Template) error {
	if c.identity == nil {
		return &ErrNotAuthenticated{}
	}

	docRaw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document snapshot: %w", err)
	}
	if err := c.store.Save(ctx, store.ScopeGuest, store.KindDocument, docRaw); err != nil {
		return fmt.Errorf("failed to snapshot document to guest scope: %w", err)
	}
	if err := c.store.Save(ctx, store.ScopeGuest, store.KindTemplate, []byte(tmpl)); err != nil {
		return fmt.Errorf("failed to snapshot template to guest scope: %w", err)
	}

	// The guest snapshot is durable; clearing the account scope can no
	// longer lose the only copy.
	if err := c.store.Clear(ctx, store.ScopeAccount, store.KindDocument); err != nil {
		return fmt.Errorf("failed to clear account document: %w", err)
	}
	if err := c.store.Clear(ctx, store.ScopeAccount, store.KindTemplate); err != nil {
		return fmt.Errorf("failed to clear account template: %w", err)
	}
	if err := c.store.ClearIdentity(ctx); err != nil {
		return fmt.Errorf("failed to clear identity slots: %w", err)
	}

	c.identity = nil
	return nil
}

// UpdateProfile replaces the in-memory identity and its persisted slot.
func (c *Controller) UpdateProfile(ctx context.Context, ident *types.Identity) error {
	if c.identity == nil {
		return &ErrNotAuthenticated{}
	}
	if err := c.store.SaveIdentity(ctx, ident); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	c.identity = ident
	return nil
}

// BannerDismissed reports the guest-banner advisory flag.
func (c *Controller) BannerDismissed(ctx context.Context) (bool, error) {
	return c.store.LoadBannerDismissed(ctx)
}

// DismissBanner sets the guest-banner advisory flag.
func (c *Controller) DismissBanner(ctx context.Context) error {
	return c.store.SaveBannerDismissed(ctx, true)
}
