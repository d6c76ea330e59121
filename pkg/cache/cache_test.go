package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %v, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) should miss")
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v; want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Clear should remove entries")
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	type info struct {
		W, H int
	}
	var got info
	if err := GetJSON(ctx, c, "info:abc", &got); err != ErrCacheMiss {
		t.Errorf("GetJSON(missing) = %v, want ErrCacheMiss", err)
	}
	if err := SetJSON(ctx, c, "info:abc", info{W: 800, H: 600}, InfoTTL); err != nil {
		t.Fatal(err)
	}
	if err := GetJSON(ctx, c, "info:abc", &got); err != nil || got.W != 800 || got.H != 600 {
		t.Errorf("GetJSON() = %+v, %v", got, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestStampAndKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.png")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}
	s1, err := Stamp(path)
	if err != nil {
		t.Fatal(err)
	}
	if s1.Size != 3 || !filepath.IsAbs(s1.Path) {
		t.Errorf("Stamp() = %+v", s1)
	}

	k := NewDefaultKeyer()
	if !strings.HasPrefix(k.InfoKey(s1), "info:") || !strings.HasPrefix(k.DataURIKey(s1), "datauri:") {
		t.Errorf("keys = %s, %s", k.InfoKey(s1), k.DataURIKey(s1))
	}
	if k.InfoKey(s1) == k.DataURIKey(s1) {
		t.Error("info and data URI keys must differ")
	}

	s2 := s1
	s2.Size = 4
	if k.InfoKey(s1) == k.InfoKey(s2) {
		t.Error("a changed file must change its key")
	}

	if _, err := Stamp(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Stamp(missing) should fail")
	}
}

func TestScopedKeyer(t *testing.T) {
	s := FileStamp{Path: "/x.png", Size: 1}
	scoped := NewScopedKeyer(nil, "v1:")
	if got := scoped.InfoKey(s); got != "v1:"+NewDefaultKeyer().InfoKey(s) {
		t.Errorf("InfoKey() = %s", got)
	}
	if keyType(scoped.DataURIKey(s)) != "datauri" {
		t.Errorf("keyType(%s) = %s", scoped.DataURIKey(s), keyType(scoped.DataURIKey(s)))
	}
}
