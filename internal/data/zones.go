package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"steam-roi/internal/model"
)

// Zone summarises one price zone present in the history file.
type Zone struct {
	Name         string    `json:"name"`   // e.g. "SP-15 LMP"
	Market       string    `json:"market"` // e.g. "CAISO"
	Observations int       `json:"observations"`
	OperatingHrs int       `json:"operating_hours"`
	First        time.Time `json:"first"`
	Last         time.Time `json:"last"`
}

// ZoneCatalog is the sidecar written next to the price history by ingestion.
type ZoneCatalog struct {
	Market    string `json:"market"`
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
	Zones     []Zone `json:"zones"`
}

// BuildZoneCatalog summarises series per zone, sorted by name.
func BuildZoneCatalog(market string, series []model.PriceObservation, now time.Time) *ZoneCatalog {
	cat := &ZoneCatalog{Market: market, UpdatedAt: now.UTC().Format(time.RFC3339)}
	for name, rows := range GroupByZone(series) {
		z := Zone{Name: name, Market: market, Observations: len(rows)}
		for _, o := range rows {
			if o.Operate {
				z.OperatingHrs++
			}
			if z.First.IsZero() || o.Time.Before(z.First) {
				z.First = o.Time
			}
			if o.Time.After(z.Last) {
				z.Last = o.Time
			}
		}
		cat.Zones = append(cat.Zones, z)
	}
	sort.Slice(cat.Zones, func(i, j int) bool { return cat.Zones[i].Name < cat.Zones[j].Name })
	return cat
}

// LoadZoneCatalog loads a catalog from a JSON file
func LoadZoneCatalog(filePath string) (*ZoneCatalog, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone catalog: %w", err)
	}

	var cat ZoneCatalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse zone catalog: %w", err)
	}

	return &cat, nil
}

// SaveZoneCatalog saves a catalog to a JSON file
func SaveZoneCatalog(cat *ZoneCatalog, filePath string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal zone catalog: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write zone catalog: %w", err)
	}

	return nil
}

// CatalogPath returns the sidecar path for a price history file:
// data/price_history.csv -> data/price_history.zones.json.
func CatalogPath(historyPath string) string {
	ext := filepath.Ext(historyPath)
	return historyPath[:len(historyPath)-len(ext)] + ".zones.json"
}
