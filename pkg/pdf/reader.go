// Package pdf binds the imposition pipeline to real PDF files.
//
// Reading (page counts, page dimensions, validation) is delegated to pdfcpu;
// writing (placing imposed pages onto paper-sized sheets, drawing print
// marks) is delegated to gofpdf with the gofpdi page importer. This package
// contains no PDF parsing or serialization of its own.
package pdf

import (
	stderrors "errors"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/binderykit/bindery/pkg/errors"
	"github.com/binderykit/bindery/pkg/paper"
)

// Document describes a readable source PDF.
type Document struct {
	// Path is the location of the source file on disk. The writer's page
	// importer re-reads pages from this path.
	Path string

	// PageCount is the number of pages in the document.
	PageCount int

	// PageDims holds the media box dimensions of every page, in points.
	PageDims []paper.Size
}

// Open reads and validates a source PDF. Encrypted documents are rejected,
// as are files pdfcpu cannot parse.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "source file %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "opening %s", path)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		if stderrors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, errors.Wrap(errors.ErrCodePDF, err, "encrypted PDFs are not supported, remove encryption and retry")
		}
		return nil, errors.Wrap(errors.ErrCodePDF, err, "the file could not be read as a valid PDF")
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, errors.Wrap(errors.ErrCodePDF, err, "the file could not be read as a valid PDF")
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePDF, err, "reading page dimensions of %s", path)
	}

	doc := &Document{
		Path:      path,
		PageCount: ctx.PageCount,
		PageDims:  make([]paper.Size, 0, len(dims)),
	}
	for _, d := range dims {
		doc.PageDims = append(doc.PageDims, paper.Size{Width: d.Width, Height: d.Height})
	}
	return doc, nil
}
