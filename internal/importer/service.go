package importer

import (
	"fmt"
	"io"

	"github.com/carepoint/medibill/internal/importer/stockcsv"
	"github.com/carepoint/medibill/internal/medicine"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: stockcsv.NewParser(),
	}
}

// Import parses a supplier stock export into medicine create params. Both
// known suppliers ship CSV; the parser auto-detects which column layout the
// file uses, so the supplier hint only gates obviously wrong uploads.
func (s *Service) Import(supplier Supplier, r io.Reader) ([]medicine.CreateParams, error) {
	switch supplier {
	case SupplierMarg, SupplierPharmarack:
		return s.csvImporter.Parse(r)
	default:
		return nil, fmt.Errorf("unknown supplier: %s", supplier)
	}
}
