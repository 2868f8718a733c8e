// Package draft stores the rows of the invoice being edited in the project
// directory and imports rows dropped into import/.
package draft

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/faktura-dev/faktura/internal/ledger"
	"github.com/faktura-dev/faktura/internal/rowio"
)

const (
	// DefaultFile is used when no draft file is configured.
	DefaultFile = "rows.csv"

	importDir    = "import"
	processedDir = "import/processed"
)

// FileInfo describes a file waiting in import/.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Service reads and writes the draft file of a project.
type Service struct {
	root    string
	file    string
	parsers *rowio.Registry
	logger  *zap.Logger
}

// NewService creates a draft Service rooted at projectRoot. file is the
// draft file name relative to the root. A nil logger disables logging.
func NewService(projectRoot, file string, logger *zap.Logger) *Service {
	if file == "" {
		file = DefaultFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		root:    projectRoot,
		file:    file,
		parsers: rowio.DefaultRegistry(),
		logger:  logger,
	}
}

// Path returns the absolute path of the draft file.
func (s *Service) Path() string {
	return filepath.Join(s.root, s.file)
}

// Load reads the draft. A missing file is an empty ledger.
func (s *Service) Load() (*ledger.Ledger, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.New(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("opening draft %s: %w", s.file, err)
	}
	defer f.Close()

	d, err := rowio.ReadDraft(f)
	if err != nil {
		return nil, fmt.Errorf("reading draft %s: %w", s.file, err)
	}
	l, err := d.Ledger()
	if err != nil {
		return nil, fmt.Errorf("loading draft %s: %w", s.file, err)
	}
	return l, nil
}

// Save replaces the draft file with the state of l. The file is written
// to a temporary name first and renamed into place.
func (s *Service) Save(l *ledger.Ledger) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating draft dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".draft-*.csv")
	if err != nil {
		return fmt.Errorf("creating draft: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := rowio.WriteDraft(tmp, rowio.DraftOf(l)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing draft: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing draft: %w", err)
	}

	s.logger.Debug("Saved draft",
		zap.String("path", path),
		zap.Int("rows", l.Len()),
		zap.Int("deleted", len(l.Deleted())),
	)
	return nil
}

// Pending returns the files in import/ that a parser is registered for.
func (s *Service) Pending() ([]FileInfo, error) {
	dir := filepath.Join(s.root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, err := s.parsers.ForPath(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// Import appends the rows of path to l as new, unsaved rows and returns
// how many were added. Nothing is added if any row is invalid.
func (s *Service) Import(l *ledger.Ledger, path string) (int, error) {
	p, err := s.parsers.ForPath(path)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	items, err := p.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	for i, item := range items {
		if err := item.Validate().Err(); err != nil {
			return 0, fmt.Errorf("%s row %d: %w", filepath.Base(path), i+1, err)
		}
	}

	for _, item := range items {
		item.ID = l.NextTemporaryID()
		if err := l.AddOrReplace(item); err != nil {
			return 0, err
		}
	}

	s.logger.Info("Imported rows",
		zap.String("file", filepath.Base(path)),
		zap.String("format", p.Format()),
		zap.Int("rows", len(items)),
	)
	return len(items), nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func (s *Service) MarkProcessed(fileName string) error {
	src := filepath.Join(s.root, importDir, fileName)
	dstDir := filepath.Join(s.root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
