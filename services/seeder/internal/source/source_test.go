package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const lotsYAML = `
parking_lots:
  - id: L1
    name: North Lot
    capacity: 120
    lat: 28.61
    lon: 77.2
`

func TestLoadBuiltin(t *testing.T) {
	reg, err := Load(context.Background(), http.DefaultClient, "builtin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reg.ParkingLots()) != 4 {
		t.Fatalf("lots = %d", len(reg.ParkingLots()))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.yaml")
	if err := os.WriteFile(path, []byte(lotsYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	reg, err := Load(context.Background(), http.DefaultClient, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lots := reg.ParkingLots()
	if len(lots) != 1 || lots[0].ID != "L1" || lots[0].Capacity != 120 {
		t.Fatalf("lots = %+v", lots)
	}
	if len(reg.Plants()) != 7 {
		t.Fatalf("plants should fall back to built-ins, got %d", len(reg.Plants()))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), http.DefaultClient, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(lotsYAML))
	}))
	defer srv.Close()

	reg, err := Load(context.Background(), srv.Client(), srv.URL+"/campus.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := reg.ParkingLot("L1"); !ok {
		t.Fatal("remote lot missing")
	}
}

func TestFetchDocumentRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchDocument(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected status error")
	}
}
