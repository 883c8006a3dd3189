package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/catalogctl/internal/config"
	"github.com/muurk/catalogctl/internal/productform"
)

func TestCLIEffectsRecordsLastNotice(t *testing.T) {
	e := &cliEffects{}
	if got := e.message(); got != "" {
		t.Errorf("message() = %q, want empty", got)
	}

	e.Refresh()
	e.GoTo("/store_1/products")
	e.Notify(productform.NoticeSuccess, productform.MsgDeleted)

	if !e.refreshed || e.path != "/store_1/products" {
		t.Errorf("effects = %+v", e)
	}
	if got := e.message(); got != productform.MsgDeleted {
		t.Errorf("message() = %q", got)
	}
}

func TestRefName(t *testing.T) {
	items := []productform.ReferenceItem{{ID: "c1", Name: "Shoes"}}
	tests := []struct {
		id   string
		want string
	}{
		{"c1", "Shoes (c1)"},
		{"missing", "missing"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := refName(items, tt.id); got != tt.want {
			t.Errorf("refName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestUseStore(t *testing.T) {
	reg := &config.Registry{Version: 1}
	useStore(reg, "store_2", "http://admin.local:3000")
	useStore(reg, "store_1", "")

	if reg.Preferences.DefaultStore != "store_1" {
		t.Errorf("default store = %q", reg.Preferences.DefaultStore)
	}
	if got := reg.GetStore("store_2").APIURL; got != "http://admin.local:3000" {
		t.Errorf("store_2 api = %q", got)
	}
	if diff := cmp.Diff([]string{"store_1", "store_2"}, knownStores(reg)); diff != "" {
		t.Errorf("known stores mismatch (-want +got):\n%s", diff)
	}

	target, err := reg.Resolve("", "store_2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if target.APIURL != "http://admin.local:3000" {
		t.Errorf("resolved api = %q", target.APIURL)
	}
}
