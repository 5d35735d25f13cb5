// Package export serializes the lead collection for download.
package export

import (
	"encoding/csv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// dateLayout formats the date-bearing export columns.
const dateLayout = "2006-01-02"

// header is the fixed CSV/XLSX column order.
var header = []string{
	"ID", "Nome", "Email", "Telefone", "Empresa",
	"Tipo de Negócio", "Status", "Criado em", "Atualizado em",
	"Resultado do Quiz", "Tags",
}

// row flattens one lead into the export column order. Tags collapse into a
// single comma-joined field; the CSV writer quotes it as needed.
func row(lead *model.Lead) []string {
	return []string{
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.BusinessType,
		string(lead.Status),
		lead.CreatedAt.Format(dateLayout),
		lead.UpdatedAt.Format(dateLayout),
		string(lead.QuizResult),
		strings.Join(lead.Tags, ", "),
	}
}

// ToCSV renders the collection as CSV: a header row plus one row per lead,
// with no trailing newline. An empty collection yields the empty string, not
// a header-only file. This is an intentional quirk of the export contract, kept under
// test.
func ToCSV(leads []model.Lead) (string, error) {
	if len(leads) == 0 {
		return "", nil
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(header); err != nil {
		return "", eris.Wrap(err, "export: write csv header")
	}
	for i := range leads {
		if err := w.Write(row(&leads[i])); err != nil {
			return "", eris.Wrapf(err, "export: write csv row %s", leads[i].ID)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "export: flush csv")
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
