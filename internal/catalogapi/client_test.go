package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/muurk/catalogctl/internal/productform"
)

const mockProduct = `{"id":"prod_1","storeId":"store_1","name":"Tee","images":[{"url":"a"}],"price":10,"categoryId":"c1","sizeId":"s1","colorId":"k1","isFeatured":false,"isArchived":false}`

func newTestClient(url string) *Client {
	c := NewClient(url, "store_1")
	c.RetryDelay = time.Millisecond
	c.MaxRetryDelay = time.Millisecond
	return c
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:3000/", "store_1")

	if client.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %s, want trailing slash trimmed", client.BaseURL)
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
	if client.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", client.MaxRetries, DefaultMaxRetries)
	}
}

func TestCreate(t *testing.T) {
	payload := productform.Payload{
		Name:       "Tee",
		Images:     []productform.Image{{URL: "a"}},
		Price:      19.99,
		CategoryID: "c1",
		SizeID:     "s1",
		ColorID:    "k1",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/store_1/products" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("X-Request-ID is not a uuid: %q", r.Header.Get(RequestIDHeader))
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var got productform.Payload
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if diff := cmp.Diff(payload, got); diff != "" {
			t.Errorf("body mismatch (-want +got):\n%s", diff)
		}
		_, _ = w.Write([]byte(`{"id":"prod_9"}`))
	}))
	defer server.Close()

	id, err := newTestClient(server.URL).Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != "prod_9" {
		t.Errorf("Create() id = %q, want prod_9", id)
	}
}

func TestUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/store_1/products/prod_1" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if price, ok := body["price"].(float64); !ok || price != 12.5 {
			t.Errorf("price = %#v, want number 12.5", body["price"])
		}
		_, _ = w.Write([]byte(mockProduct))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Update(context.Background(), "prod_1", productform.Payload{Name: "Tee", Price: 12.5})
	if err != nil {
		t.Errorf("Update() error = %v", err)
	}
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Delete(context.Background(), "prod_1")
	if err == nil {
		t.Fatal("Delete() error = nil")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("DELETE sent %d times, want 1", got)
	}
}

func TestDeleteConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Product has orders", http.StatusConflict)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Delete(context.Background(), "prod_1")
	if !IsConflict(err) {
		t.Fatalf("Delete() error = %v, want conflict", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Product has orders" {
		t.Errorf("Message = %q, want server text", apiErr.Message)
	}
	if apiErr.RequestID == "" {
		t.Error("RequestID not recorded on error")
	}
}

func TestGetProduct_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(mockProduct))
	}))
	defer server.Close()

	p, err := newTestClient(server.URL).GetProduct(context.Background(), "prod_1")
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if p.ID != "prod_1" || p.Price != 10 {
		t.Errorf("GetProduct() = %+v", p)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestGetProduct_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("GetProduct() error = %v, want not found", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestGetProduct_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "prod_1")
	apiErr, ok := asAPIError(err)
	if !ok || apiErr.Type != ErrTypeParse {
		t.Errorf("GetProduct() error = %v, want parse error", err)
	}
}

func TestLoadReferences(t *testing.T) {
	lists := map[string]string{
		"/api/store_1/categories": `[{"id":"c1","name":"Shirts"}]`,
		"/api/store_1/sizes":      `[{"id":"s1","name":"Small"},{"id":"s2","name":"Large"}]`,
		"/api/store_1/colors":     `[]`,
	}
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		body, ok := lists[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	refs, err := client.LoadReferences(context.Background())
	if err != nil {
		t.Fatalf("LoadReferences() error = %v", err)
	}

	want := &References{
		Categories: []productform.ReferenceItem{{ID: "c1", Name: "Shirts"}},
		Sizes:      []productform.ReferenceItem{{ID: "s1", Name: "Small"}, {ID: "s2", Name: "Large"}},
		Colors:     []productform.ReferenceItem{},
	}
	if diff := cmp.Diff(want, refs); diff != "" {
		t.Errorf("references mismatch (-want +got):\n%s", diff)
	}

	// Second load is served from cache.
	if _, err := client.LoadReferences(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3 (cached second load)", got)
	}

	client.InvalidateCache()
	if _, err := client.LoadReferences(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 6 {
		t.Errorf("calls = %d, want 6 after invalidation", got)
	}
}

func TestListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[" + mockProduct + "]"))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 1 || products[0].Name != "Tee" {
		t.Errorf("ListProducts() = %+v", products)
	}
}

func TestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url)
	client.MaxRetries = 0
	_, err := client.GetProduct(context.Background(), "prod_1")
	if !IsNetworkError(err) {
		t.Errorf("GetProduct() error = %v, want network error", err)
	}
}
