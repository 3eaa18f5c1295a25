package api

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tailscale/hujson"

	"github.com/vovakirdan/turtle/internal/script"
)

// ErrFormat is returned for an unknown encoding, hash or compression name.
var ErrFormat = errors.New("data: unknown format")

func encode(format string, data []byte) (string, error) {
	switch format {
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "hex":
		return strings.ToUpper(hex.EncodeToString(data)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, format)
}

func decode(format, text string) ([]byte, error) {
	switch format {
	case "base64":
		return base64.StdEncoding.DecodeString(text)
	case "hex":
		return hex.DecodeString(text)
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, format)
}

func hasher(name string) (hash.Hash, error) {
	switch name {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha384":
		return sha512.New384(), nil
	case "sha512":
		return sha512.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, name)
}

// Compress compresses data with gzip, brotli, zstd or bzip2.
func Compress(format string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch format {
	case "gzip":
		gz, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		w = gz
	case "brotli":
		w = brotli.NewWriterLevel(&buf, brotli.BestCompression)
	case "zstd":
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case "bzip2":
		bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
		if err != nil {
			return nil, err
		}
		w = bz
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("data: %s: %w", format, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("data: %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(format string, data []byte) ([]byte, error) {
	var r io.Reader
	switch format {
	case "gzip":
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("data: gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "brotli":
		r = brotli.NewReader(bytes.NewReader(data))
	case "zstd":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("data: zstd: %w", err)
		}
		return out, nil
	case "bzip2":
		bz, err := bzip2.NewReader(bytes.NewReader(data), nil)
		if err != nil {
			return nil, fmt.Errorf("data: bzip2: %w", err)
		}
		defer bz.Close()
		r = bz
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("data: %s: %w", format, err)
	}
	return out, nil
}

// Pack serializes a script value as JSON with sorted object keys.
func Pack(v any) (string, error) {
	out, err := jsonv2.Marshal(v, jsonv2.Deterministic(true))
	if err != nil {
		return "", fmt.Errorf("data: pack: %w", err)
	}
	return string(out), nil
}

// Unpack parses JSON, tolerating comments and trailing commas.
func Unpack(text string) (any, error) {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("data: unpack: %w", err)
	}
	var v any
	if err := jsonv2.Unmarshal(std, &v); err != nil {
		return nil, fmt.Errorf("data: unpack: %w", err)
	}
	return v, nil
}

func dataNamespace() script.Namespace {
	// pair reads two leading string arguments.
	pair := func(a script.Args) (string, string, error) {
		x, err := a.String(0)
		if err != nil {
			return "", "", err
		}
		y, err := a.String(1)
		return x, y, err
	}
	return script.Namespace{
		Name: "data",
		Funcs: map[string]script.Func{
			"encode": func(a script.Args) (any, error) {
				format, text, err := pair(a)
				if err != nil {
					return nil, err
				}
				return encode(format, []byte(text))
			},
			"decode": func(a script.Args) (any, error) {
				format, text, err := pair(a)
				if err != nil {
					return nil, err
				}
				out, err := decode(format, text)
				if err != nil {
					return nil, err
				}
				return string(out), nil
			},
			"hash": func(a script.Args) (any, error) {
				name, text, err := pair(a)
				if err != nil {
					return nil, err
				}
				h, err := hasher(name)
				if err != nil {
					return nil, err
				}
				h.Write([]byte(text))
				return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
			},
			"compress": func(a script.Args) (any, error) {
				format, text, err := pair(a)
				if err != nil {
					return nil, err
				}
				out, err := Compress(format, []byte(text))
				if err != nil {
					return nil, err
				}
				return base64.StdEncoding.EncodeToString(out), nil
			},
			"decompress": func(a script.Args) (any, error) {
				format, text, err := pair(a)
				if err != nil {
					return nil, err
				}
				raw, err := base64.StdEncoding.DecodeString(text)
				if err != nil {
					return nil, fmt.Errorf("data: decompress: %w", err)
				}
				out, err := Decompress(format, raw)
				if err != nil {
					return nil, err
				}
				return string(out), nil
			},
			"pack": func(a script.Args) (any, error) {
				return Pack(a.Any(0))
			},
			"unpack": func(a script.Args) (any, error) {
				text, err := a.String(0)
				if err != nil {
					return nil, err
				}
				return Unpack(text)
			},
		},
	}
}
