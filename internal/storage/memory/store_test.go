package memory

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/respkv/pkg/resp"
)

func TestStore_Scalar(t *testing.T) {
	s := New()

	if _, ok := s.Get("k"); ok {
		t.Fatal("Get() on empty store should miss")
	}

	s.Set("k", resp.BulkText("v1"))
	s.Set("k", resp.BulkText("v2"))

	got, ok := s.Get("k")
	if !ok {
		t.Fatal("Get() missed after Set()")
	}
	if !resp.Equal(got, resp.BulkText("v2")) {
		t.Errorf("Get() = %v, want v2", got)
	}
}

func TestStore_ScalarKeepsFrameKind(t *testing.T) {
	s := New()
	s.Set("n", resp.Integer(42))

	got, _ := s.Get("n")
	if got.Kind() != resp.KindInteger || got.Int() != 42 {
		t.Errorf("Get() = %v, want integer 42", got)
	}
}

func TestStore_Hash(t *testing.T) {
	s := New()

	if _, ok := s.HGet("h", "f"); ok {
		t.Fatal("HGet() on absent hash should miss")
	}
	if _, ok := s.HGetAll("h"); ok {
		t.Fatal("HGetAll() on absent hash should report absent")
	}

	if !s.HSet("h", "f1", resp.BulkText("a")) {
		t.Error("HSet() new field should report true")
	}
	if s.HSet("h", "f1", resp.BulkText("b")) {
		t.Error("HSet() existing field should report false")
	}
	s.HSet("h", "f2", resp.Integer(2))

	got, ok := s.HGet("h", "f1")
	if !ok || !resp.Equal(got, resp.BulkText("b")) {
		t.Errorf("HGet() = %v, %v; want b, true", got, ok)
	}
	if _, ok := s.HGet("h", "missing"); ok {
		t.Error("HGet() on missing field should miss")
	}

	all, ok := s.HGetAll("h")
	if !ok {
		t.Fatal("HGetAll() should report present")
	}
	slices.SortFunc(all, func(a, b FieldValue) int {
		if a.Field < b.Field {
			return -1
		}
		if a.Field > b.Field {
			return 1
		}
		return 0
	})
	want := []FieldValue{
		{Field: "f1", Value: resp.BulkText("b")},
		{Field: "f2", Value: resp.Integer(2)},
	}
	if diff := cmp.Diff(want, all, cmp.Comparer(resp.Equal)); diff != "" {
		t.Errorf("HGetAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_HMGet(t *testing.T) {
	s := New()

	values, found := s.HMGet("h", []string{"a", "b"})
	if len(values) != 2 || found[0] || found[1] {
		t.Fatalf("HMGet() on absent hash = %v, %v", values, found)
	}

	s.HSet("h", "a", resp.BulkText("1"))
	values, found = s.HMGet("h", []string{"a", "b", "a"})
	if diff := cmp.Diff([]bool{true, false, true}, found); diff != "" {
		t.Errorf("found mismatch (-want +got):\n%s", diff)
	}
	if !resp.Equal(values[0], resp.BulkText("1")) || !resp.Equal(values[2], resp.BulkText("1")) {
		t.Errorf("values = %v", values)
	}
}

func TestStore_Set(t *testing.T) {
	s := New()

	if s.SIsMember("s", "a") {
		t.Fatal("SIsMember() on absent set should be false")
	}
	if got := s.SMembers("s"); got != nil {
		t.Fatalf("SMembers() on absent set = %v, want nil", got)
	}

	if !s.SAdd("s", "a") {
		t.Error("SAdd() new member should report true")
	}
	if s.SAdd("s", "a") {
		t.Error("SAdd() duplicate should report false")
	}
	s.SAdd("s", "b")

	got := s.SMembers("s")
	slices.Sort(got)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("SMembers() mismatch (-want +got):\n%s", diff)
	}
	if !s.SIsMember("s", "b") || s.SIsMember("s", "c") {
		t.Error("SIsMember() wrong result")
	}
}

func TestStore_NamespacesAreIndependent(t *testing.T) {
	s := New()
	s.Set("k", resp.BulkText("scalar"))
	s.HSet("k", "f", resp.BulkText("hash"))
	s.SAdd("k", "member")

	if v, _ := s.Get("k"); !resp.Equal(v, resp.BulkText("scalar")) {
		t.Errorf("Get() = %v", v)
	}
	if v, _ := s.HGet("k", "f"); !resp.Equal(v, resp.BulkText("hash")) {
		t.Errorf("HGet() = %v", v)
	}
	if !s.SIsMember("k", "member") {
		t.Error("SIsMember() = false")
	}

	want := Stats{Scalars: 1, Hashes: 1, Sets: 1}
	if got := s.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestStore_WithShardCount(t *testing.T) {
	if got := New(WithShardCount(64)).ShardCount(); got != 64 {
		t.Errorf("ShardCount() = %d, want 64", got)
	}
	if got := New(WithShardCount(3)).ShardCount(); got != 16 {
		t.Errorf("ShardCount() with invalid count = %d, want default 16", got)
	}
}

func TestStore_ConcurrentSAdd(t *testing.T) {
	s := New()
	const workers = 32
	const perWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.SAdd("shared", fmt.Sprintf("m-%d-%d", w, i))
			}
		}(w)
	}
	wg.Wait()

	if got := len(s.SMembers("shared")); got != workers*perWorker {
		t.Errorf("len(SMembers()) = %d, want %d", got, workers*perWorker)
	}
}

func TestStore_ConcurrentHSet(t *testing.T) {
	s := New()
	const workers = 32

	var wg sync.WaitGroup
	added := make([]bool, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			s.HSet("h", fmt.Sprintf("f%d", w), resp.Integer(int64(w)))
			added[w] = s.HSet("h", "common", resp.Integer(int64(w)))
		}(w)
	}
	wg.Wait()

	all, _ := s.HGetAll("h")
	if len(all) != workers+1 {
		t.Errorf("len(HGetAll()) = %d, want %d", len(all), workers+1)
	}

	newCount := 0
	for _, a := range added {
		if a {
			newCount++
		}
	}
	if newCount != 1 {
		t.Errorf("common field reported new %d times, want 1", newCount)
	}
}

func TestStore_ConcurrentMixed(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", w%4)
			for i := 0; i < 200; i++ {
				s.Set(key, resp.Integer(int64(i)))
				s.Get(key)
				s.HSet(key, "f", resp.Integer(int64(i)))
				s.HGetAll(key)
				s.SAdd(key, fmt.Sprint(i))
				s.SMembers(key)
			}
		}(w)
	}
	wg.Wait()

	if got := s.Stats(); got.Scalars != 4 || got.Hashes != 4 || got.Sets != 4 {
		t.Errorf("Stats() = %+v", got)
	}
	if got := len(s.SMembers("k0")); got != 200 {
		t.Errorf("len(SMembers(k0)) = %d, want 200", got)
	}
}
