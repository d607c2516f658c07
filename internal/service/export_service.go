package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/makeasinger/lyricstudio/internal/client"
	"github.com/makeasinger/lyricstudio/internal/document"
	"github.com/makeasinger/lyricstudio/internal/model"
)

// ErrStorageNotConfigured is returned by Share without a storage client.
var ErrStorageNotConfigured = errors.New("storage not configured")

const shareExpiry = 24 * time.Hour

// ExportService renders lyrics documents and optionally shares them
type ExportService struct {
	storage client.StorageClient
	font    []byte
}

// NewExportService creates a new export service. storage may be nil.
func NewExportService(storage client.StorageClient) *ExportService {
	return &ExportService{storage: storage}
}

// SetFont makes exports use a UTF-8 TrueType font. Call before serving.
func (s *ExportService) SetFont(font []byte) {
	s.font = font
}

// PDF writes the rendered document to w.
func (s *ExportService) PDF(w io.Writer, req *model.ExportPDFRequest) (document.Stats, error) {
	return document.Render(w, req.Lyrics, document.Options{Title: req.Title, Font: s.font})
}

// FileName returns a download name for an export.
func (s *ExportService) FileName() string {
	return fmt.Sprintf("lyrics-%s.pdf", uuid.New().String()[:8])
}

// Share renders the PDF and uploads it to object storage
func (s *ExportService) Share(ctx context.Context, req *model.ExportPDFRequest) (*model.ExportPDFShareResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}

	var buf bytes.Buffer
	if _, err := s.PDF(&buf, req); err != nil {
		return nil, err
	}
	size := int64(buf.Len())

	key := fmt.Sprintf("exports/%s.pdf", uuid.New().String())
	url, err := s.storage.Upload(ctx, key, &buf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("PDF upload failed: %w", err)
	}

	return &model.ExportPDFShareResponse{
		FileURL:   url,
		Size:      size,
		Format:    "pdf",
		ExpiresAt: time.Now().Add(shareExpiry),
	}, nil
}

// StorageConfigured reports whether Share can work.
func (s *ExportService) StorageConfigured() bool {
	return s.storage != nil
}
