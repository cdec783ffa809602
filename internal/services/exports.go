package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/solidarias/internal/export"
	"github.com/dmitrijs2005/solidarias/internal/filex"
	"github.com/dmitrijs2005/solidarias/internal/objectstore"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
)

// ExportResult describes one written export.
type ExportResult struct {
	Format export.Format
	// Path is the absolute path of the written file.
	Path string
	// Key is the object key of the uploaded copy, empty when upload is off.
	Key  string
	Data []byte
}

// ExportService writes the product inventory to the export directory and,
// when an uploader is configured, to object storage.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	dir         string
	uploader    objectstore.Uploader
}

// NewExportService returns an ExportService writing under dir. A nil
// uploader disables uploads.
func NewExportService(db *sql.DB, m repomanager.RepositoryManager, dir string, uploader objectstore.Uploader) *ExportService {
	return &ExportService{db: db, repomanager: m, dir: dir, uploader: uploader}
}

// Export snapshots all products in format f. The file is written before the
// upload is attempted, so an upload error leaves the local export in place.
func (s *ExportService) Export(ctx context.Context, f export.Format) (*ExportResult, error) {
	products, err := s.repomanager.Products(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := export.Encode(f, products)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureSubDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}
	path, err := filex.WriteFile(dir, f.FileName(), data)
	if err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}

	res := &ExportResult{Format: f, Path: path, Data: data}

	if s.uploader != nil {
		key, err := s.uploader.Upload(ctx, f.FileName(), f.ContentType(), data)
		if err != nil {
			return res, fmt.Errorf("upload export: %w", err)
		}
		res.Key = key
	}

	return res, nil
}
