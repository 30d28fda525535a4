package dcf

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteTableCSV writes the table with one row per metric and one column per
// year, the layout finance reviewers expect.
func WriteTableCSV(path string, t *CashFlowTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteTable(f, t); err != nil {
		return err
	}
	return f.Close()
}

func WriteTable(out io.Writer, t *CashFlowTable) error {
	w := csv.NewWriter(out)

	header := make([]string, 0, len(t.Years)+1)
	header = append(header, "metric")
	for _, r := range t.Years {
		header = append(header, strconv.Itoa(r.Year))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, name := range Metrics {
		vals, err := t.Metric(name)
		if err != nil {
			return err
		}
		row := make([]string, 0, len(vals)+1)
		row = append(row, name)
		for _, v := range vals {
			row = append(row, fmtFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
