// Package filex materializes opaque content references into temporary local
// files for multipart uploads, and cleans them up afterwards.
package filex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyReference = errors.New("empty content reference")

// Materializer converts a content reference (a local path or a file:// URI)
// into a temporary local file owned by the caller.
type Materializer interface {
	Materialize(ctx context.Context, ref string) (string, error)
}

// TempMaterializer copies referenced content into dir as upload_<uuid>.<ext>.
type TempMaterializer struct {
	dir string
}

func NewTempMaterializer(dir string) *TempMaterializer {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "mitra-uploads")
	}
	return &TempMaterializer{dir: dir}
}

func (m *TempMaterializer) Materialize(ctx context.Context, ref string) (string, error) {
	src, err := resolveRef(ref)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(in, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	head = head[:n]

	dir, err := EnsureDir(m.dir)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, "upload_"+uuid.NewString()+"."+extension(src, head))
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	_, err = io.Copy(out, io.MultiReader(bytes.NewReader(head), in))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = Remove(dst)
		return "", fmt.Errorf("copy to %s: %w", dst, err)
	}
	return dst, nil
}

// Remove deletes path; a missing file is not an error.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// EnsureDir creates dir (and parents) with 0700 permissions and returns it.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

func resolveRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyReference
	}
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("parse reference %q: %w", ref, err)
		}
		return filepath.FromSlash(u.Path), nil
	}
	return ref, nil
}

// extension prefers the source file's own extension, then the sniffed MIME
// type, then "tmp".
func extension(src string, head []byte) string {
	if ext := strings.TrimPrefix(filepath.Ext(src), "."); ext != "" {
		return strings.ToLower(ext)
	}
	ctype := http.DetectContentType(head)
	if mt, _, err := mime.ParseMediaType(ctype); err == nil {
		if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
			return strings.TrimPrefix(exts[0], ".")
		}
	}
	return "tmp"
}
