package extractor

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// Document is an opened document as seen by the extractor. Pages are zero-based.
type Document interface {
	NumPage() int
	Text(page int) (string, error)
	Render(page int, dpi float64) (image.Image, error)
	Close() error
}

// OpenFunc opens a document from its raw bytes.
type OpenFunc func(data []byte) (Document, error)

// fitzDocument adapts a MuPDF document.
type fitzDocument struct {
	doc *fitz.Document
}

// OpenFitz opens data with MuPDF.
func OpenFitz(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &fitzDocument{doc: doc}, nil
}

func (d *fitzDocument) NumPage() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) Text(page int) (string, error) {
	return d.doc.Text(page)
}

func (d *fitzDocument) Render(page int, dpi float64) (image.Image, error) {
	return d.doc.ImageDPI(page, dpi)
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
