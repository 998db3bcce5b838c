package settings

import (
	"errors"
	"testing"
)

type memStore struct {
	items   map[string][]byte
	loadErr error
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.items == nil {
		m.items = map[string][]byte{}
	}
	m.items[key] = data
	return nil
}

func TestLoadDefaults(t *testing.T) {
	cases := []struct {
		name  string
		store Store
	}{
		{name: "nil store"},
		{name: "nothing saved", store: &memStore{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Load(tc.store)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != Defaults() {
				t.Fatalf("Load = %+v, want defaults", got)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := &memStore{}
	want := Saved{
		PredictionEnabled: false,
		ShowServerGhost:   true,
		PlayerName:        "tester",
		ServerAddress:     "example.org:7373",
	}

	if err := Save(store, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	if _, err := Load(&memStore{loadErr: boom}); !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want wrapped %v", err, boom)
	}

	corrupt := &memStore{items: map[string][]byte{settingsKey: []byte("{not json")}}
	got, err := Load(corrupt)
	if err == nil {
		t.Fatal("Load of corrupt data should fail")
	}
	if got != Defaults() {
		t.Fatalf("Load of corrupt data = %+v, want defaults", got)
	}
}
