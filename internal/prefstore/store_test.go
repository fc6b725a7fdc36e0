package prefstore

import (
	"reflect"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Get("absent"); ok {
		t.Error("Get(absent) ok = true on empty store")
	}

	if err := m.Set("editor.font", "hack"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Set("mytool.action.key", "shift+f1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok := m.Get("mytool.action.key")
	if !ok || v != "shift+f1" {
		t.Errorf("Get() = %q, %v, want %q, true", v, ok, "shift+f1")
	}

	if err := m.Set("editor.font", "terminus"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := m.Get("editor.font"); v != "terminus" {
		t.Errorf("Get() after overwrite = %q, want %q", v, "terminus")
	}

	want := []string{"editor.font", "mytool.action.key"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if err := m.Delete("editor.font"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := m.Get("editor.font"); ok {
		t.Error("Get() ok = true after Delete")
	}
	if err := m.Delete("editor.font"); err != nil {
		t.Errorf("Delete() of absent name error = %v, want nil", err)
	}
}
