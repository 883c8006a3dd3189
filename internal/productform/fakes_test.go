package productform

import (
	"context"
	"fmt"
	"sync"
)

// event is one boundary call recorded in order across all fakes.
type event struct {
	Kind string
	Arg  string
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) add(kind, arg string) {
	r.mu.Lock()
	r.events = append(r.events, event{Kind: kind, Arg: arg})
	r.mu.Unlock()
}

func (r *recorder) all() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event, len(r.events))
	copy(out, r.events)
	return out
}

type fakeStore struct {
	rec *recorder

	mu       sync.Mutex
	creates  []Payload
	updates  []Payload
	deletes  []string
	err      error
	panicMsg string
	// gate, when set, blocks each call until it is closed.
	gate    chan struct{}
	entered chan struct{}
}

func (s *fakeStore) call(kind string) error {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.rec.add(kind, "")
	return s.err
}

func (s *fakeStore) Create(_ context.Context, p Payload) (string, error) {
	s.mu.Lock()
	s.creates = append(s.creates, p)
	s.mu.Unlock()
	if err := s.call("create"); err != nil {
		return "", err
	}
	return fmt.Sprintf("prod_%d", len(s.creates)), nil
}

func (s *fakeStore) Update(_ context.Context, id string, p Payload) error {
	s.mu.Lock()
	s.updates = append(s.updates, p)
	s.mu.Unlock()
	return s.call("update:" + id)
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, id)
	s.mu.Unlock()
	return s.call("delete:" + id)
}

func (s *fakeStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.creates) + len(s.updates) + len(s.deletes)
}

type fakeNav struct{ rec *recorder }

func (n fakeNav) GoTo(path string) { n.rec.add("goto", path) }
func (n fakeNav) Refresh()         { n.rec.add("refresh", "") }

type fakeNotifier struct{ rec *recorder }

func (n fakeNotifier) Notify(kind NoticeKind, message string) {
	n.rec.add("notify:"+kind.String(), message)
}

type harness struct {
	rec   *recorder
	store *fakeStore
	ctrl  *Controller
}

func newHarness(initial *Product) *harness {
	rec := &recorder{}
	store := &fakeStore{rec: rec}
	ctrl := NewController(Config{
		StoreID:     "store_1",
		Initial:     initial,
		Persistence: store,
		Navigator:   fakeNav{rec: rec},
		Notifier:    fakeNotifier{rec: rec},
	})
	return &harness{rec: rec, store: store, ctrl: ctrl}
}

func existingProduct() *Product {
	return &Product{
		ID:         "prod_1",
		StoreID:    "store_1",
		Name:       "Tee",
		Images:     []Image{{URL: "a"}},
		Price:      10,
		CategoryID: "c1",
		SizeID:     "s1",
		ColorID:    "k1",
	}
}
