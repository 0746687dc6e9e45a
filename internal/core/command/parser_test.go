package command

import (
	"errors"
	"testing"

	"github.com/yndnr/respkv/pkg/resp"
)

func TestNewParser_RequiresArray(t *testing.T) {
	tests := []struct {
		name  string
		frame resp.Frame
	}{
		{name: "bulk string", frame: resp.BulkText("GET")},
		{name: "null array", frame: resp.NullArray()},
		{name: "set", frame: resp.Set(resp.BulkText("GET"))},
		{name: "integer", frame: resp.Integer(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParser(tt.frame); !errors.Is(err, ErrInvalidType) {
				t.Errorf("NewParser() error = %v, want ErrInvalidType", err)
			}
		})
	}
}

func TestParser_Walk(t *testing.T) {
	p, err := NewParser(resp.Array(
		resp.BulkText("HSET"),
		resp.SimpleString("key"),
		resp.Integer(7),
	))
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}

	peek, err := p.PeekString()
	if err != nil || peek != "HSET" {
		t.Fatalf("PeekString() = %q, %v", peek, err)
	}
	if p.Remaining() != 3 {
		t.Errorf("PeekString() consumed an element")
	}

	for _, want := range []string{"HSET", "key"} {
		got, err := p.NextString()
		if err != nil || got != want {
			t.Fatalf("NextString() = %q, %v; want %q", got, err, want)
		}
	}

	if err := p.Finish(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Finish() error = %v, want ErrNotFinished", err)
	}
	if _, err := p.NextString(); !errors.Is(err, ErrInvalidType) {
		t.Errorf("NextString() on integer error = %v, want ErrInvalidType", err)
	}

	f, err := p.Next()
	if err != nil || !resp.Equal(f, resp.Integer(7)) {
		t.Fatalf("Next() = %v, %v", f, err)
	}
	if err := p.Finish(); err != nil {
		t.Errorf("Finish() error = %v", err)
	}
	if _, err := p.Next(); !errors.Is(err, ErrEndOfElements) {
		t.Errorf("Next() past end error = %v, want ErrEndOfElements", err)
	}
	if _, err := p.PeekString(); !errors.Is(err, ErrEndOfElements) {
		t.Errorf("PeekString() past end error = %v, want ErrEndOfElements", err)
	}
}

func TestParser_NextStringErrors(t *testing.T) {
	tests := []struct {
		name    string
		elem    resp.Frame
		wantErr error
	}{
		{name: "invalid utf-8", elem: resp.BulkString([]byte{0xff, 0xfe}), wantErr: ErrInvalidUTF8},
		{name: "null bulk string", elem: resp.NullBulkString(), wantErr: ErrInvalidType},
		{name: "null", elem: resp.Null(), wantErr: ErrInvalidType},
		{name: "array", elem: resp.Array(), wantErr: ErrInvalidType},
		{name: "simple error", elem: resp.SimpleError("ERR"), wantErr: ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParser(resp.Array(tt.elem))
			if err != nil {
				t.Fatalf("NewParser() error = %v", err)
			}
			if _, err := p.NextString(); !errors.Is(err, tt.wantErr) {
				t.Errorf("NextString() error = %v, want %v", err, tt.wantErr)
			}
			if p.Remaining() != 1 {
				t.Error("failed NextString() consumed the element")
			}
		})
	}
}

func TestParser_EmptyBulkIsText(t *testing.T) {
	p, _ := NewParser(resp.Array(resp.BulkString(nil)))
	s, err := p.NextString()
	if err != nil || s != "" {
		t.Errorf("NextString() = %q, %v; want empty string", s, err)
	}
}
