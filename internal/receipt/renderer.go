// Package receipt renders one audit appendix document per settlement
// batch, listing every underlying transaction.
package receipt

import (
	"path/filepath"
	"strconv"

	"github.com/f-klubben/mpdinero/internal/model"
)

// Renderer writes a batch's appendix document to a path. The pipeline
// depends on this interface, not on a PDF backend, so batch rendering
// failures stay isolated and tests need no backend at all.
type Renderer interface {
	Render(b model.SettlementBatch, path string) error
}

// Filename returns the appendix document path: <dir>/<appendix>.pdf.
// The name must match the ledger's appendix column.
func Filename(dir string, appendix int) string {
	return filepath.Join(dir, strconv.Itoa(appendix)+".pdf")
}
