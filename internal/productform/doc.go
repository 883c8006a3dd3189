// Package productform is the rendering-independent controller behind the
// product editor.
//
// A Form holds the live, possibly invalid values being edited and validates
// each field as it changes against a declarative Schema. The ordered images
// collection is edited through an ImageField, and relation fields are set
// through a Picker bound to a caller-owned reference list.
//
// A Controller owns the busy flag for one form and issues at most one
// persistence effect at a time:
//
//	ctrl := productform.NewController(productform.Config{
//	    StoreID:     "store_1",
//	    Initial:     product, // nil for create mode
//	    Persistence: client,
//	    Navigator:   nav,
//	    Notifier:    toasts,
//	})
//	err := ctrl.Submit(ctx, form)
//
// A Coordinator runs the two-phase destructive flow on top of the
// controller: RequestDelete opens a confirmation Modal, Confirm performs the
// delete, Cancel dismisses it. Nothing is shown before Mount.
//
// Hosts inject Persistence, Navigator and Notifier. This package performs no
// I/O of its own.
package productform
