// Package ingest loads booking records from tabular sources for batch
// screening.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"skyscreen/internal/screening"
)

// recordColumns is the expected CSV shape:
// name, birth date, airport code, seat number, cabin class.
const recordColumns = 5

// ReadRecords parses booking records from r. The first line is treated as a
// header and skipped; rows with fewer than five columns are skipped rather
// than failing the batch.
func ReadRecords(r io.Reader) ([]screening.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []screening.Record
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bookings csv: %w", err)
		}
		if first {
			first = false
			continue
		}
		if len(row) < recordColumns {
			continue
		}
		records = append(records, screening.Record{
			Name:        strings.TrimSpace(row[0]),
			BirthDate:   strings.TrimSpace(row[1]),
			AirportCode: strings.TrimSpace(row[2]),
			SeatNumber:  strings.TrimSpace(row[3]),
			CabinClass:  strings.TrimSpace(row[4]),
		})
	}
	return records, nil
}

// LoadRecords reads booking records from a CSV file.
func LoadRecords(path string) ([]screening.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bookings csv %q: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}
