// Package document describes the external store that keeps contract files
// and the naming of objects placed in it.
package document

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
)

var ErrLinkExists = apperr.New(apperr.Conflict, "el archivo ya tiene un vínculo compartido público")

// File is an uploaded file as received from the client.
type File struct {
	Name string
	Data []byte
}

// Stored locates a file in the external store.
type Stored struct {
	Path string
}

//go:generate mockgen -source=document.go -destination=store_mock.go -package=document
type Store interface {
	Upload(ctx context.Context, name string, data []byte) (*Stored, error)
	Delete(ctx context.Context, path string) error
	// PublicLink returns ErrLinkExists when the object is already shared.
	PublicLink(ctx context.Context, path string) (string, error)
}

// Put uploads f under a dated object name and shares it. The object is removed
// again when sharing fails, so nothing is left behind on error. Store failures
// other than ErrLinkExists are reported as ExternalService.
func Put(ctx context.Context, s Store, f File, now time.Time) (Stored, string, error) {
	stored, err := s.Upload(ctx, ObjectName(f.Name, now), f.Data)
	if err != nil {
		return Stored{}, "", external("no se pudo subir el documento", err)
	}

	link, err := s.PublicLink(ctx, stored.Path)
	if err != nil {
		if derr := s.Delete(ctx, stored.Path); derr != nil {
			slog.Error("failed to remove unshared document", "path", stored.Path, "error", derr)
		}

		return Stored{}, "", external("no se pudo compartir el documento", err)
	}

	return *stored, link, nil
}

// Remove deletes the object at path, reporting failures as ExternalService.
func Remove(ctx context.Context, s Store, path string) error {
	if err := s.Delete(ctx, path); err != nil {
		return external("no se pudo eliminar el documento", err)
	}

	return nil
}

func external(msg string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}

	return apperr.Wrap(apperr.ExternalService, msg, err)
}

// ObjectName builds "<name>-YYYYMMDD<ext>" from the original filename, with
// accents folded and anything outside [A-Za-z0-9._-] replaced by '_'.
func ObjectName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))

	return SafeName(base) + "-" + now.Format("20060102") + SafeName(ext)
}

// SafeName folds accents and replaces anything outside [A-Za-z0-9._-] with '_'.
func SafeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}

		return '_'
	}, folded)
}

var errUnconfigured = errors.New("document store is not configured")

// Unconfigured rejects every operation. It stands in when no bucket is set,
// so contracts without documents keep working.
type Unconfigured struct{}

func (Unconfigured) Upload(context.Context, string, []byte) (*Stored, error) {
	return nil, errUnconfigured
}

func (Unconfigured) Delete(context.Context, string) error { return errUnconfigured }

func (Unconfigured) PublicLink(context.Context, string) (string, error) {
	return "", errUnconfigured
}
