package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XlsxSource parses the first sheet of a workbook: a header row followed by
// data rows, same columns as the CSV feed.
type XlsxSource struct{ data []byte }

func NewXlsxSource(data []byte) *XlsxSource { return &XlsxSource{data} }

func (s *XlsxSource) Records() ([]Record, error) {
	x, err := excelize.OpenReader(bytes.NewReader(s.data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable xlsx workbook: %v", ErrValidation, err)
	}
	defer x.Close()

	sheet := x.GetSheetName(0)
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", ErrValidation, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := headerIndex(rows[0])
	if _, ok := col["farmid"]; !ok {
		return nil, fmt.Errorf("%w: sheet %q is missing a farm_id column", ErrValidation, sheet)
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		out = append(out, recordFromRow(col, row, "xlsx"))
	}
	return out, nil
}
