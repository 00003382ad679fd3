// Package matrix loads a skill matrix from a comma-separated file with a
// header row.
package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/fit-scorer/internal/scoring"
	"github.com/spigell/fit-scorer/internal/validation"
)

const (
	ColumnRequirement      = "requirement"
	ColumnClassification   = "classification"
	ColumnSelfScore        = "selfscore"
	ColumnNotes            = "notes"
	ColumnEmphasisOverride = "emphasisoverride"
)

// aliases maps alternative header names onto canonical columns.
var aliases = map[string]string{
	"skill":            ColumnRequirement,
	"requirementskill": ColumnRequirement,
	"score":            ColumnSelfScore,
	"emphasis":         ColumnEmphasisOverride,
}

// row is one decoded CSV record before type conversion.
type row struct {
	Requirement      string `csv:"requirement"`
	Classification   string `csv:"classification"`
	SelfScore        string `csv:"selfscore"`
	Notes            string `csv:"notes"`
	EmphasisOverride string `csv:"emphasisoverride"`
}

// Load reads the matrix stored at path.
func Load(path string) ([]scoring.Requirement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix: %w", err)
	}
	defer file.Close()

	reqs, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

// Read parses a matrix. Header names are matched case-insensitively and
// ignore spaces, dashes and underscores. Rows with only empty cells are skipped.
func Read(r io.Reader) ([]scoring.Requirement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, validation.New("matrix", "", "file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	reqs := make([]scoring.Requirement, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read matrix: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		req, err := decode(columns, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		reqs = append(reqs, req)
	}

	return reqs, nil
}

func mapHeader(header []string) (map[int]string, error) {
	columns := make(map[int]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		key := canonical(name)
		if alias, ok := aliases[key]; ok {
			key = alias
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		columns[i] = key
	}

	var missing []string
	for _, required := range []string{ColumnRequirement, ColumnClassification, ColumnSelfScore} {
		if !seen[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, validation.New("matrix header", strings.Join(header, ","), "missing required columns: "+strings.Join(missing, ", "))
	}
	return columns, nil
}

func decode(columns map[int]string, record []string) (scoring.Requirement, error) {
	fields := make(map[string]any, len(columns))
	for i, value := range record {
		if key, ok := columns[i]; ok {
			fields[key] = strings.TrimSpace(value)
		}
	}

	var raw row
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &raw,
		TagName: "csv",
	})
	if err != nil {
		return scoring.Requirement{}, err
	}
	if err := decoder.Decode(fields); err != nil {
		return scoring.Requirement{}, err
	}

	class, err := scoring.ParseClassification(raw.Classification)
	if err != nil {
		return scoring.Requirement{}, err
	}
	emphasis, err := scoring.ParseEmphasis(raw.EmphasisOverride)
	if err != nil {
		return scoring.Requirement{}, err
	}

	return scoring.Requirement{
		Text:             raw.Requirement,
		Classification:   class,
		SelfScore:        coerceScore(raw.SelfScore),
		Notes:            raw.Notes,
		EmphasisOverride: emphasis,
	}, nil
}

// coerceScore turns a cell into a whole self-score. Unparseable cells count
// as 0 and fractions are truncated; range clamping is left to the engine.
func coerceScore(v string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func canonical(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '/':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
