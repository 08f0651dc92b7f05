package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ut-382v-ashkan-and-david/pyrsa/codec"
	"github.com/ut-382v-ashkan-and-david/pyrsa/rdm"
)

// Magic identifies an RDM snapshot file.
var Magic = [4]byte{'P', 'R', 'S', 'A'}

// Version is the current snapshot format version.
const Version uint16 = 1

// Compression names accepted by WithCompression.
const (
	CompressionNone = "none"
	CompressionLZ4  = "lz4"
	CompressionZstd = "zstd"
)

// Option configures snapshot writing.
type Option func(*options)

type options struct {
	codec       codec.Codec
	compression string
}

// WithCodec overrides the payload codec (default codec.Default).
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression: CompressionNone,
// CompressionLZ4 or CompressionZstd.
func WithCompression(name string) Option {
	return func(o *options) {
		o.compression = name
	}
}

// payload is the serialized form of an RDM collection.
type payload struct {
	Method          string           `json:"method"`
	NRDM            int              `json:"n_rdm"`
	Conditions      []float64        `json:"conditions"`
	Dissimilarities []float64        `json:"dissimilarities"`
	Descriptors     map[string][]int `json:"descriptors,omitempty"`
}

// Save writes the collection to w.
func Save(w io.Writer, r *rdm.RDMs, opts ...Option) error {
	o := options{codec: codec.Default, compression: CompressionLZ4}
	for _, fn := range opts {
		fn(&o)
	}

	raw, err := o.codec.Marshal(payload{
		Method:          r.Method.String(),
		NRDM:            r.NRDM,
		Conditions:      r.Conditions,
		Dissimilarities: r.Dissimilarities,
		Descriptors:     r.RDMDescriptors,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}

	compressed, err := compress(raw, o.compression)
	if err != nil {
		return err
	}

	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return err
	}
	if err := writeString(w, o.codec.Name()); err != nil {
		return err
	}
	if err := writeString(w, o.compression); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(compressed))); err != nil {
		return err
	}
	_, err = w.Write(compressed)
	return err
}

// Load reads a collection previously written by Save.
func Load(r io.Reader) (*rdm.RDMs, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("read snapshot magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("not an rdm snapshot (magic %q)", magic)
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}
	codecName, err := readString(r)
	if err != nil {
		return nil, err
	}
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("unknown snapshot codec %q", codecName)
	}
	compression, err := readString(r)
	if err != nil {
		return nil, err
	}
	var payloadLen uint64
	if err := binary.Read(r, binary.LittleEndian, &payloadLen); err != nil {
		return nil, err
	}
	compressed := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read snapshot payload: %w", err)
	}

	raw, err := decompress(compressed, compression)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := c.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}
	method, err := rdm.ParseMethod(p.Method)
	if err != nil {
		return nil, err
	}
	return rdm.NewRDMs(p.Dissimilarities, p.NRDM, p.Conditions, method, p.Descriptors)
}

// SaveFile writes the collection to path, creating or truncating the file.
func SaveFile(path string, r *rdm.RDMs, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, r, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a collection from path.
func LoadFile(path string) (*rdm.RDMs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func compress(raw []byte, compression string) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return raw, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil
	default:
		return nil, fmt.Errorf("unknown snapshot compression %q", compression)
	}
}

func decompress(data []byte, compression string) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		zr := lz4.NewReader(bytes.NewReader(data))
		return io.ReadAll(zr)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("unknown snapshot compression %q", compression)
	}
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
