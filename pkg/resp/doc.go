// Package resp implements the RESP3 wire format used by respkv.
//
// The package is split into three layers:
//
//   - frame.go: the Frame value model, a tagged union over the twelve
//     protocol types (simple string, simple error, integer, bulk string,
//     array, null, boolean, double, big number, bulk error, map, set)
//   - decode.go / encode.go: the stateless codec. Decode never consumes
//     input when it returns ErrIncomplete, so callers can retry from the
//     same position once more bytes arrive.
//   - stream.go: a buffering Decoder fed arbitrary chunks, plus Reader and
//     Writer adapters over io.Reader / io.Writer.
//
// Usage:
//
//	f, n, err := resp.Decode(buf)
//	switch {
//	case errors.Is(err, resp.ErrIncomplete):
//		// read more bytes and retry from buf[0]
//	case err != nil:
//		// corrupt stream, close the connection
//	default:
//		buf = buf[n:]
//	}
//
// Frames are immutable values. Map and Set frames keep their entries
// sorted by Compare with duplicates removed, so Encode is deterministic and
// Decode(Encode(f)) is Equal to f.
package resp
