// Package tui implements the interactive product form screen.
//
// The screen hosts a productform.Form, Controller and Coordinator inside a
// Bubble Tea program. Persistence calls run inside tea.Cmds; the navigator
// and notifier effects they raise are recorded off the UI goroutine and
// replayed by Update when the command settles, so all model state changes
// happen on the program's goroutine.
//
// Layout follows the usual container pattern:
//
//	func (m FormModel) View() string {
//	    return RenderApplicationContainer(m.renderForm(), helpText, store, m.Width, m.Height)
//	}
//
// The delete confirmation renders as a centered modal via RenderModal. Its
// buttons are inert while the delete runs, and a settle that arrives after
// the user quit is dropped.
//
// Usage:
//
//	res, err := tui.Run(ctx, tui.Config{
//	    StoreID:     "store_1",
//	    Product:     product, // nil for create mode
//	    Categories:  refs.Categories,
//	    Sizes:       refs.Sizes,
//	    Colors:      refs.Colors,
//	    Persistence: client,
//	})
package tui
