// Package gcs keeps contract documents in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/MrJamesThe3rd/contratos/internal/document"
)

const defaultBaseURL = "https://storage.googleapis.com"

type Config struct {
	Bucket          string
	Folder          string
	CredentialsJSON string
	PublicBaseURL   string
}

type Store struct {
	client  *storage.Client
	bucket  *storage.BucketHandle
	folder  string
	baseURL string
}

// New connects with the configured service account credentials, or with
// application default credentials when none are given.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL + "/" + cfg.Bucket
	}

	return &Store{
		client:  client,
		bucket:  client.Bucket(cfg.Bucket),
		folder:  strings.Trim(cfg.Folder, "/"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Upload(ctx context.Context, name string, data []byte) (*document.Stored, error) {
	key := objectKey(s.folder, name)

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = http.DetectContentType(data)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("uploading %s: %w", key, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing writer for %s: %w", key, err)
	}

	return &document.Stored{Path: key}, nil
}

// Delete removes the object. A missing object is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// PublicLink grants anonymous read access to the object and returns its URL.
// It returns document.ErrLinkExists when the object is already public.
func (s *Store) PublicLink(ctx context.Context, key string) (string, error) {
	acl := s.bucket.Object(key).ACL()

	rules, err := acl.List(ctx)
	if err != nil {
		return "", fmt.Errorf("reading acl of %s: %w", key, err)
	}

	if isPublic(rules) {
		return "", document.ErrLinkExists
	}

	if err := acl.Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("sharing %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

func isPublic(rules []storage.ACLRule) bool {
	for _, r := range rules {
		if r.Entity == storage.AllUsers && (r.Role == storage.RoleReader || r.Role == storage.RoleOwner) {
			return true
		}
	}

	return false
}

func objectKey(folder, name string) string {
	if folder == "" {
		return name
	}

	return path.Join(folder, name)
}
