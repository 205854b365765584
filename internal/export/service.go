package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/document"
)

// Item is an exported contract with the local path of its document, if any.
type Item struct {
	Contract *contract.Contract
	FilePath string
}

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=export
type Lister interface {
	Filter(ctx context.Context, actor access.Actor, criteria contract.Criteria) ([]*contract.Contract, error)
}

// Service downloads the documents of contracts visible to an actor.
type Service struct {
	contracts Lister
	client    *http.Client
}

func NewService(contracts Lister, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &Service{contracts: contracts, client: client}
}

// Export downloads the document of every contract matching criteria into
// outputDir. Contracts without a document are listed with an empty FilePath.
func (s *Service) Export(ctx context.Context, actor access.Actor, criteria contract.Criteria, outputDir string) ([]Item, error) {
	contracts, err := s.contracts.Filter(ctx, actor, criteria)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(contracts))

	for _, c := range contracts {
		item := Item{Contract: c}

		if c.Document != nil && c.Document.Link != "" {
			path, err := s.download(ctx, c, outputDir)
			if err != nil {
				return nil, fmt.Errorf("downloading document of contract %s: %w", c.Dictamen, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) download(ctx context.Context, c *contract.Contract, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Document.Link, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, c.Document.Link)
	}

	path := filepath.Join(dir, filename(resp, c))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// filename prefixes the document name with the contract key so files from
// different directorates never collide.
func filename(resp *http.Response, c *contract.Contract) string {
	prefix := document.SafeName(c.Directorate + "_" + c.Dictamen)

	name := c.Document.OriginalName

	if cd := resp.Header.Get("Content-Disposition"); name == "" && cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}

	if name == "" {
		ext := ".pdf"

		if exts, _ := mime.ExtensionsByType(resp.Header.Get("Content-Type")); len(exts) > 0 {
			ext = exts[0]
		}

		return prefix + ext
	}

	return prefix + "_" + strings.ReplaceAll(filepath.Base(name), " ", "_")
}

// Summary renders one line per exported contract.
func (s *Service) Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		c := item.Contract

		expiration := "Sin vencimiento"
		if v := contract.FormatDate(c.Expiration); v != nil {
			expiration = *v
		}

		available := "-"
		if v := contract.FormatMoney(c.Available); v != nil {
			available = *v
		}

		file := "Sin documento"
		if item.FilePath != "" {
			file = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s | %s\n", c.Dictamen, c.Directorate, c.Status, expiration, available, file)
	}

	return sb.String()
}
