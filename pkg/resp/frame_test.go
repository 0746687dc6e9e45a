package resp

import (
	"math"
	"testing"
)

func TestEqual_NullIsNotEmpty(t *testing.T) {
	tests := []struct {
		name        string
		null, empty Frame
	}{
		{name: "bulk string", null: NullBulkString(), empty: BulkString(nil)},
		{name: "array", null: NullArray(), empty: Array()},
		{name: "map", null: NullMap(), empty: Map()},
		{name: "set", null: NullSet(), empty: Set()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Equal(tt.null, tt.empty) {
				t.Errorf("null %v equals empty %v", tt.null, tt.empty)
			}
			if !tt.null.IsNull() {
				t.Error("IsNull() = false for null form")
			}
			if tt.empty.IsNull() {
				t.Error("IsNull() = true for empty form")
			}
			if Compare(tt.null, tt.empty) >= 0 {
				t.Error("null should sort before empty")
			}
		})
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	frames := sampleFrames()
	for i, a := range frames {
		if Compare(a, a) != 0 {
			t.Errorf("Compare(%v, %v) != 0", a, a)
		}
		for _, b := range frames[i+1:] {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab != -ba {
				t.Errorf("Compare not antisymmetric for %v and %v: %d vs %d", a, b, ab, ba)
			}
		}
	}
}

func TestCompare_KindOrder(t *testing.T) {
	ordered := []Frame{
		SimpleString("z"),
		SimpleError("a"),
		Integer(-100),
		BulkText(""),
		Array(),
		Null(),
		Boolean(false),
		Double(math.NaN()),
		BigNumber("0"),
		BulkError(nil),
		Map(),
		Set(),
	}
	for i := 1; i < len(ordered); i++ {
		if Compare(ordered[i-1], ordered[i]) >= 0 {
			t.Errorf("%v should sort before %v", ordered[i-1], ordered[i])
		}
	}
}

func TestCompare_Doubles(t *testing.T) {
	if !Equal(Double(math.NaN()), Double(math.NaN())) {
		t.Error("NaN should equal NaN")
	}
	if Compare(Double(math.NaN()), Double(math.Inf(-1))) >= 0 {
		t.Error("NaN should sort before -inf")
	}
	if !Equal(Double(0), Double(math.Copysign(0, -1))) {
		t.Error("0 should equal -0")
	}
}

func TestMap_LastKeyWins(t *testing.T) {
	m := Map(
		Pair{Key: BulkText("k"), Value: Integer(1)},
		Pair{Key: BulkText("a"), Value: Integer(2)},
		Pair{Key: BulkText("k"), Value: Integer(3)},
	)
	pairs := m.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("len(Pairs()) = %d, want 2", len(pairs))
	}
	if !Equal(pairs[0].Key, BulkText("a")) || !Equal(pairs[1].Key, BulkText("k")) {
		t.Errorf("pairs not sorted: %v", m)
	}
	if !Equal(pairs[1].Value, Integer(3)) {
		t.Errorf("duplicate key value = %v, want 3", pairs[1].Value)
	}
}

func TestSet_SortedUnique(t *testing.T) {
	s := Set(BulkText("b"), BulkText("a"), BulkText("b"), BulkText("c"))
	want := []Frame{BulkText("a"), BulkText("b"), BulkText("c")}
	elems := s.Elems()
	if len(elems) != len(want) {
		t.Fatalf("len(Elems()) = %d, want %d", len(elems), len(want))
	}
	for i := range want {
		if !Equal(elems[i], want[i]) {
			t.Errorf("Elems()[%d] = %v, want %v", i, elems[i], want[i])
		}
	}
}

func TestFrame_Accessors(t *testing.T) {
	if got := BulkText("abc").Text(); got != "abc" {
		t.Errorf("Text() = %q", got)
	}
	if got := SimpleString("OK").Text(); got != "OK" {
		t.Errorf("Text() = %q", got)
	}
	if got := Integer(5).Int(); got != 5 {
		t.Errorf("Int() = %d", got)
	}
	if !Boolean(true).Bool() {
		t.Error("Bool() = false")
	}
	if got := Double(2.5).Float(); got != 2.5 {
		t.Errorf("Float() = %v", got)
	}
	if got := Array(Null(), Null()).Len(); got != 2 {
		t.Errorf("Len() = %d", got)
	}
	if !Null().IsNull() {
		t.Error("Null().IsNull() = false")
	}
	if got := Array(BulkText("a"), Integer(1), NullBulkString()).String(); got != `["a", 1, (nil)]` {
		t.Errorf("String() = %s", got)
	}
	if got := KindMap.String(); got != "map" {
		t.Errorf("Kind.String() = %s", got)
	}
}
