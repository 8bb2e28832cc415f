package render

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a config directory under $HOME
	api.DisableConfigDir()
}

// PDFInfo describes a rendered invoice file
type PDFInfo struct {
	Size  int64 `json:"size"`
	Pages int   `json:"pages"`
	Valid bool  `json:"valid"`
}

// Inspect validates a PDF and counts its pages
func Inspect(rs io.ReadSeeker) (*PDFInfo, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to size document: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind document: %w", err)
	}

	info := &PDFInfo{Size: size}

	conf := pdfmodel.NewDefaultConfiguration()
	if err := api.Validate(rs, conf); err != nil {
		return info, fmt.Errorf("invalid PDF: %w", err)
	}
	info.Valid = true

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("failed to rewind document: %w", err)
	}
	pages, err := api.PageCount(rs, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return info, fmt.Errorf("failed to count pages: %w", err)
	}
	info.Pages = pages

	return info, nil
}
