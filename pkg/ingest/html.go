package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLTableSource scrapes the first <table> of an HTML page: header cells
// name the columns (same names as the CSV feed), each following row is one
// farm.
type HTMLTableSource struct{ content string }

func NewHTMLTableSource(content string) *HTMLTableSource { return &HTMLTableSource{content} }

func (s *HTMLTableSource) Records() ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.content))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable html: %v", ErrValidation, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no table found in html", ErrValidation)
	}

	rows := table.Find("tr")
	var head []string
	rows.First().Find("th, td").Each(func(_ int, c *goquery.Selection) {
		head = append(head, c.Text())
	})
	col := headerIndex(head)
	if _, ok := col["farmid"]; !ok {
		return nil, fmt.Errorf("%w: table is missing a farm_id column", ErrValidation)
	}

	var out []Record
	rows.Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, td.Text())
		})
		if len(row) == 0 {
			return
		}
		out = append(out, recordFromRow(col, row, "html"))
	})
	return out, nil
}
