package data

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"steam-roi/internal/model"
)

// WriteScheduleCSV writes the hourly operating schedule of obs, one row per
// hour with the running cumulative operating hours.
func WriteScheduleCSV(path string, obs []model.PriceObservation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteSchedule(f, obs); err != nil {
		return err
	}
	return f.Close()
}

func WriteSchedule(out io.Writer, obs []model.PriceObservation) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"datetime",
		"zone",
		"price",
		"action",
		"cum_operating_hours",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	operating := 0
	for i, o := range obs {
		if o.Operate {
			operating++
		}
		row := []string{
			strconv.Itoa(i),
			o.Time.Format(time.RFC3339),
			o.Zone,
			strconv.FormatFloat(o.Price, 'f', 2, 64),
			string(o.Action()),
			strconv.Itoa(operating),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
