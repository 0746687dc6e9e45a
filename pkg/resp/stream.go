package resp

import (
	"bufio"
	"errors"
	"io"
)

// Decoder decodes frames from a stream of arbitrary byte chunks.
//
// Feed appends input; Next returns the next complete frame. A Decoder is
// not safe for concurrent use. Once it reports a protocol error the
// stream is no longer frame-aligned and every later call returns the same
// error.
type Decoder struct {
	buf    []byte
	off    int
	limits Limits
	err    error
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLimits sets the decoder limits. Zero fields keep their defaults.
func WithLimits(l Limits) DecoderOption {
	return func(d *Decoder) {
		d.limits = l.orDefault()
	}
}

// NewDecoder creates a Decoder with DefaultLimits.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{limits: DefaultLimits}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed appends p to the decoder's buffer.
func (d *Decoder) Feed(p []byte) {
	if d.off > 0 && d.off == len(d.buf) {
		d.buf = d.buf[:0]
		d.off = 0
	} else if d.off > cap(d.buf)/2 {
		n := copy(d.buf, d.buf[d.off:])
		d.buf = d.buf[:n]
		d.off = 0
	}
	d.buf = append(d.buf, p...)
}

// Next returns the next complete frame. It returns ErrIncomplete when the
// buffered bytes do not yet hold a whole frame.
func (d *Decoder) Next() (Frame, error) {
	if d.err != nil {
		return Frame{}, d.err
	}
	f, n, err := DecodeWithLimits(d.buf[d.off:], d.limits)
	if err != nil {
		if !errors.Is(err, ErrIncomplete) {
			d.err = err
		}
		return Frame{}, err
	}
	d.off += n
	return f, nil
}

// Frames returns every complete frame currently buffered. A trailing
// partial frame is left in the buffer and is not an error.
func (d *Decoder) Frames() ([]Frame, error) {
	var out []Frame
	for {
		f, err := d.Next()
		if errors.Is(err, ErrIncomplete) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

// Buffered returns the number of bytes waiting to be decoded.
func (d *Decoder) Buffered() int {
	return len(d.buf) - d.off
}

// Reset discards buffered input and any sticky error.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.off = 0
	d.err = nil
}

// readChunk is the read size used by Reader.
const readChunk = 4096

// Reader reads frames from an io.Reader.
type Reader struct {
	r     io.Reader
	dec   *Decoder
	chunk []byte
}

// NewReader wraps r.
func NewReader(r io.Reader, opts ...DecoderOption) *Reader {
	return &Reader{
		r:     r,
		dec:   NewDecoder(opts...),
		chunk: make([]byte, readChunk),
	}
}

// ReadFrame blocks until a whole frame has been read. It returns io.EOF
// if the stream ends cleanly between frames and io.ErrUnexpectedEOF if
// it ends inside one.
func (r *Reader) ReadFrame() (Frame, error) {
	for {
		f, err := r.dec.Next()
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, ErrIncomplete) {
			return Frame{}, err
		}

		n, rerr := r.r.Read(r.chunk)
		if n > 0 {
			r.dec.Feed(r.chunk[:n])
		}
		if rerr != nil {
			if n > 0 {
				// Decode what arrived before reporting the error.
				if f, err := r.dec.Next(); err == nil {
					return f, nil
				}
			}
			if errors.Is(rerr, io.EOF) && r.dec.Buffered() > 0 {
				return Frame{}, io.ErrUnexpectedEOF
			}
			return Frame{}, rerr
		}
	}
}

// Buffered returns the number of bytes read but not yet decoded.
func (r *Reader) Buffered() int {
	return r.dec.Buffered()
}

// Writer writes frames to an io.Writer through a buffer.
type Writer struct {
	bw      *bufio.Writer
	scratch []byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteFrame buffers the encoded frame. Call Flush to send it.
func (w *Writer) WriteFrame(f Frame) error {
	w.scratch = AppendFrame(w.scratch[:0], f)
	_, err := w.bw.Write(w.scratch)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
