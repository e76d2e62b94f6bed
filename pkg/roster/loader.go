package roster

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// LoadCSV reads a personnel table from a CSV file. The first row is the
// header; rows may be ragged (missing trailing cells read as empty).
func LoadCSV(path string) (r Roster, err error) {
	file, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open personnel file: %s", path)
		return r, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		err = errors.Wrapf(err, "failed to parse personnel CSV: %s", path)
		return r, err
	}

	if len(records) == 0 {
		err = errors.Errorf("personnel file is empty: %s", path)
		return r, err
	}

	r, err = FromRows(records[0], records[1:])
	if err != nil {
		err = errors.Wrapf(err, "invalid personnel table: %s", path)
		return r, err
	}

	return r, err
}
