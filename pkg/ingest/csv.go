package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CsvSource parses a UTF-8 CSV feed. Required column: farm_id; optional:
// farm_name, acreage, geometry (embedded GeoJSON string), latitude,
// longitude, last_updated.
type CsvSource struct{ content string }

func NewCsvSource(content string) *CsvSource { return &CsvSource{content} }

func (s *CsvSource) Records() ([]Record, error) {
	r := csv.NewReader(strings.NewReader(s.content))
	r.FieldsPerRecord = -1 // tolerate short rows

	head, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: unreadable csv header: %v", ErrValidation, err)
	}
	col := headerIndex(head)
	if _, ok := col["farmid"]; !ok {
		return nil, fmt.Errorf("%w: csv is missing a farm_id column", ErrValidation)
	}

	var out []Record
	for {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: bad csv row: %v", ErrValidation, err)
		}
		out = append(out, recordFromRow(col, row, "csv"))
	}
	return out, nil
}
