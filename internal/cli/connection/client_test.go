package connection

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// fakeServer answers every request with reply and records the requests.
func fakeServer(t *testing.T, reply func(req resp.Frame) resp.Frame) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				r := resp.NewReader(conn)
				w := resp.NewWriter(conn)
				for {
					req, err := r.ReadFrame()
					if err != nil {
						return
					}
					if err := w.WriteFrame(reply(req)); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				}
			}()
		}
	}()
	return ln.Addr().String()
}

func TestClient_Do(t *testing.T) {
	reqs := make(chan resp.Frame, 1)
	addr := fakeServer(t, func(req resp.Frame) resp.Frame {
		reqs <- req
		return resp.SimpleString("OK")
	})

	c, err := Dial(context.Background(), addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	reply, err := c.Do(context.Background(), "SET", "k", "v")
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !resp.Equal(reply, resp.SimpleString("OK")) {
		t.Errorf("Do() = %v, want OK", reply)
	}
	want := resp.Array(resp.BulkText("SET"), resp.BulkText("k"), resp.BulkText("v"))
	if got := <-reqs; !resp.Equal(got, want) {
		t.Errorf("server received %v, want %v", got, want)
	}
}

func TestClient_ErrorReplyIsNotError(t *testing.T) {
	addr := fakeServer(t, func(resp.Frame) resp.Frame {
		return resp.SimpleError("ERR unknown command 'NOPE'")
	})

	c, err := Dial(context.Background(), addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	reply, err := c.Do(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if reply.Kind() != resp.KindSimpleError {
		t.Errorf("Do() kind = %v, want simple error", reply.Kind())
	}
}

func TestClient_Timeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			time.Sleep(time.Second)
		}
	}()

	c, err := Dial(context.Background(), ln.Addr().String(), WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	_, err = c.Do(context.Background(), "GET", "k")
	var ne net.Error
	if !errors.As(err, &ne) || !ne.Timeout() {
		t.Errorf("Do() error = %v, want timeout", err)
	}
}

func TestClient_Closed(t *testing.T) {
	addr := fakeServer(t, func(resp.Frame) resp.Frame { return resp.Null() })

	c, err := Dial(context.Background(), addr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := c.Do(context.Background(), "GET", "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Do() after Close error = %v, want ErrClosed", err)
	}
}

func TestDial_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	if _, err := Dial(context.Background(), addr); err == nil {
		t.Error("Dial() to closed port should fail")
	}
}
