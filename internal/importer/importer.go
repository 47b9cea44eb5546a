package importer

import (
	"io"

	"github.com/carepoint/medibill/internal/medicine"
)

// Supplier identifies which distributor's export format a file uses.
type Supplier string

const (
	SupplierMarg       Supplier = "marg"
	SupplierPharmarack Supplier = "pharmarack"
)

type Importer interface {
	Parse(r io.Reader) ([]medicine.CreateParams, error)
}
