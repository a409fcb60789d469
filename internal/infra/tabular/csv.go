package tabular

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"strings"
	"time"

	"vitrine-engine/internal/infra"
)

// Table is one decoded CSV document with case/whitespace-normalized headers.
// Sources spell headers inconsistently ("Preco Vista", "PRECOVISTA", ...);
// lookups go through NormalizeHeader so rows read the same either way.
type Table struct {
	index map[string]int
	rows  [][]string
}

func Decode(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindMalformed, "failed to decode csv document", err)
	}
	if len(records) == 0 {
		return nil, infra.WrapRepoErr(infra.KindMalformed, "csv document has no header row", nil)
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[NormalizeHeader(h)] = i
	}

	return &Table{index: index, rows: records[1:]}, nil
}

// NormalizeHeader uppercases, trims, strips a UTF-8 BOM and turns spaces
// into underscores.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.ToUpper(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) HasColumn(names ...string) bool {
	for _, n := range names {
		if _, ok := t.index[NormalizeHeader(n)]; ok {
			return true
		}
	}
	return false
}

// Field returns the trimmed cell for the first column name that exists, or
// "" when none do. Callers pass aliases in preference order
// (e.g. "PRECOVISTA", "PRECO").
func (t *Table) Field(row int, names ...string) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	r := t.rows[row]
	for _, n := range names {
		col, ok := t.index[NormalizeHeader(n)]
		if !ok || col >= len(r) {
			continue
		}
		if v := strings.TrimSpace(r[col]); v != "" {
			return v
		}
	}
	return ""
}

// ParseMoneyCents accepts Brazilian ("1.234,56", "R$ 10,00") and plain
// ("1234.56") decimal spellings and converts to integer cents.
func ParseMoneyCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v * 100)), nil
}

func ParseInt(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func ParseInt64(s string) (int64, error) {
	v, err := ParseInt(s)
	return int64(v), err
}

func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

// ParseBool understands the source's truthy spellings.
func ParseBool(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "S", "SIM", "TRUE", "VERDADEIRO", "Y", "YES":
		return true
	default:
		return false
	}
}

// ParseCivilDate parses a day/month/year date into civil midnight of the
// given timezone.
func ParseCivilDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006", "2/1/2006", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	_, err := time.ParseInLocation("02/01/2006", s, loc)
	return time.Time{}, err
}

// ParseAttributes decodes the serialized variant attribute map of a
// DETALHESGRADE cell: "Cor:Azul;Tamanho:M" (also tolerates "|" separators
// and "=" pairs).
func ParseAttributes(s string) map[string]string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	sep := ";"
	if !strings.Contains(s, ";") && strings.Contains(s, "|") {
		sep = "|"
	}

	out := make(map[string]string)
	for _, pair := range strings.Split(s, sep) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		eq := strings.IndexAny(pair, ":=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(pair[:eq])
		val := strings.TrimSpace(pair[eq+1:])
		if key != "" && val != "" {
			out[key] = val
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
