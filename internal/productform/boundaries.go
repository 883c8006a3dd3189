package productform

import "context"

// Persistence creates, updates and deletes products.
type Persistence interface {
	Create(ctx context.Context, p Payload) (string, error)
	Update(ctx context.Context, id string, p Payload) error
	Delete(ctx context.Context, id string) error
}

// Navigator moves the host to another view.
type Navigator interface {
	GoTo(path string)
	// Refresh re-fetches server data for the current view.
	Refresh()
}

// NoticeKind distinguishes toast severities.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

func (k NoticeKind) String() string {
	if k == NoticeError {
		return "error"
	}
	return "success"
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(kind NoticeKind, message string)
}
