package backend

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"inversiones/internal/core"
)

// MemoryStore serves a fixed slice of records. It backs local development
// and tests where neither the open-data API nor a snapshot is available.
type MemoryStore struct {
	mu    sync.Mutex
	items []core.Record
}

// NewMemory creates a store over the given records.
func NewMemory(records []core.Record) *MemoryStore {
	return &MemoryStore{items: append([]core.Record(nil), records...)}
}

// NewMemoryFromFiles loads seed records from base/seed_records.json,
// falling back to a small built-in sample when the file is missing.
func NewMemoryFromFiles(base string) *MemoryStore {
	records := readSeedRecords(filepath.Join(base, "seed_records.json"))
	if len(records) == 0 {
		records = sampleRecords()
	}
	return NewMemory(records)
}

// Fetch returns a copy of the stored records.
func (s *MemoryStore) Fetch(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.items...), nil
}

func readSeedRecords(path string) []core.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []core.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func sampleRecords() []core.Record {
	return []core.Record{
		{Year: 2022, Department: "Antioquia", Municipality: "Medellín", FundingSource: "PGN", AmountPaid: 1_500_000_000, Sector: "Transporte", Project: "Vía terciaria Oriente"},
		{Year: 2022, Department: "Nariño", Municipality: "Pasto", FundingSource: "SGR", AmountPaid: 820_000_000, Sector: "Educación", Project: "Dotación escolar Pasto"},
		{Year: 2023, Department: "Antioquia", Municipality: "Envigado", FundingSource: "PGN", AmountPaid: 640_000_000, Sector: "Salud", Project: "Centro de salud Envigado"},
		{Year: 2023, Department: "Bogotá D.C.", Municipality: "Bogotá D.C.", FundingSource: "Propios", AmountPaid: 2_100_000_000, Sector: "Vivienda", Project: "Mejoramiento de vivienda urbana"},
		{Year: 2024, Department: "Nariño", Municipality: "Ipiales", FundingSource: "SGR", AmountPaid: 430_000_000, Sector: "Agua potable", Project: "Acueducto rural Ipiales"},
	}
}
