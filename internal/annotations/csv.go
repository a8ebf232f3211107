package annotations

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"", "tweet", "author", "sentiment", "ranking"}

// WriteCSV writes rows as comma separated values with a leading index column.
func WriteCSV(w io.Writer, rows []Annotation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i),
			row.Tweet,
			row.Author,
			string(row.Sentiment),
			strconv.Itoa(row.Ranking),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
