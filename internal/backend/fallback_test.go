package backend

import (
	"context"
	"errors"
	"testing"

	"inversiones/internal/core"
)

type stubSource struct {
	records []core.Record
	err     error
	calls   int
}

func (s *stubSource) Fetch(_ context.Context) ([]core.Record, error) {
	s.calls++
	return s.records, s.err
}

func TestFallbackSourcePrefersPrimary(t *testing.T) {
	primary := &stubSource{records: []core.Record{{Year: 2023, AmountPaid: 100}}}
	snapshot := &stubSource{records: []core.Record{{Year: 2020, AmountPaid: 1}}}

	src := newFallbackSource(primary, snapshot, nil)
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 1 || got[0].Year != 2023 {
		t.Fatalf("Fetch() = %v, want primary records", got)
	}
	if snapshot.calls != 0 {
		t.Fatalf("snapshot consulted %d times, want 0", snapshot.calls)
	}
}

func TestFallbackSourceServesSnapshotOnPrimaryFailure(t *testing.T) {
	primary := &stubSource{err: errors.New("api down")}
	snapshot := &stubSource{records: []core.Record{{Year: 2020, AmountPaid: 1}}}

	src := newFallbackSource(primary, snapshot, nil)
	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 1 || got[0].Year != 2020 {
		t.Fatalf("Fetch() = %v, want snapshot records", got)
	}
}

func TestFallbackSourceEmptySnapshotKeepsPrimaryError(t *testing.T) {
	wantErr := errors.New("api down")
	primary := &stubSource{err: wantErr}
	snapshot := &stubSource{}

	src := newFallbackSource(primary, snapshot, nil)
	if _, err := src.Fetch(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Fetch() error = %v, want %v", err, wantErr)
	}
}

func TestSourceTypeValidation(t *testing.T) {
	for _, tt := range []struct {
		in    SourceType
		valid bool
	}{
		{SocrataSource, true},
		{SnapshotSource, true},
		{MemorySource, true},
		{"sheets", false},
		{"", false},
	} {
		if got := tt.in.IsValid(); got != tt.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.valid)
		}
	}
}
