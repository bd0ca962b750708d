package feed

import (
	"encoding/csv"
	"fmt"
	"os"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// rosterColumns is the header of the legacy roster file. The file is
// semicolon-separated, one courier per row.
var rosterColumns = []string{"id_livreur", "nom_livreur"}

// LoadRoster reads the courier roster from a semicolon-separated CSV file
// with an `id_livreur;nom_livreur` header. Identifiers must be UUIDs.
func LoadRoster(path string) ([]*courier.Courier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = len(rosterColumns)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing roster file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster file %s is empty", path)
	}

	header := rows[0]
	for i, column := range rosterColumns {
		if header[i] != column {
			return nil, fmt.Errorf("roster file %s: expected column %q, got %q", path, column, header[i])
		}
	}

	couriers := make([]*courier.Courier, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id, idErr := kernel.UUIDFromString(row[0])
		if idErr != nil {
			return nil, fmt.Errorf("roster courier %q: %w", row[0], idErr)
		}

		c, courierErr := courier.NewCourier(id, row[1])
		if courierErr != nil {
			return nil, fmt.Errorf("roster courier %q: %w", row[0], courierErr)
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
