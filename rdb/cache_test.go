package rdb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Test.rdb")
	data := buildRDB(t, []field{{"name", "Test Game"}, {"crc", []byte{0xDE, 0xAD, 0xBE, 0xEF}}})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write RDB: %v", err)
	}

	c := NewCache(2)
	first, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g := first.FindByCRC32(0xDEADBEEF); g == nil || g.Name != "Test Game" {
		t.Fatalf("expected Test Game, got %+v", g)
	}

	// A second load must come from the cache even if the file is gone
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove RDB: %v", err)
	}
	second, err := c.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached database")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cached database, got %d", c.Len())
	}
}

func TestCacheLoadMissing(t *testing.T) {
	c := NewCache(0)
	if _, err := c.Load(filepath.Join(t.TempDir(), "missing.rdb")); err == nil {
		t.Error("expected error for missing file")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}
