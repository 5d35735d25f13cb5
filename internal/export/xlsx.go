package export

import (
	"bytes"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// ToXLSX renders the collection as a single-sheet XLSX workbook with the same
// columns as the CSV export. Unlike CSV, an empty collection still produces a
// valid workbook with the header row, since spreadsheet consumers expect an
// openable file.
func ToXLSX(leads []model.Lead) ([]byte, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return nil, eris.Wrap(err, "export: add xlsx sheet")
	}

	hr := sheet.AddRow()
	for _, col := range header {
		hr.AddCell().Value = col
	}

	for i := range leads {
		r := sheet.AddRow()
		for _, field := range row(&leads[i]) {
			r.AddCell().Value = field
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "export: write xlsx")
	}
	return buf.Bytes(), nil
}
