package operators

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/youruser/wallpaperapp/internal/util"
)

const (
	RosterFile = "operators.json"
	legacyCSV  = "operators_info.csv"
	skinsJSON  = "skins_info.json"
)

// LoadFromDataDir loads operators.json from dataDir. When it is absent the
// older operators_info.csv plus skins_info.json pair is used instead.
func LoadFromDataDir(dataDir string) (Roster, error) {
	r, err := LoadJSON(filepath.Join(dataDir, RosterFile))
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	csvPath := filepath.Join(dataDir, legacyCSV)
	if _, err := os.Stat(csvPath); err != nil {
		return nil, fmt.Errorf("no operator data found in %s", dataDir)
	}
	r, err = loadCSV(csvPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", csvPath, err)
	}
	if err := mergeSkins(r, filepath.Join(dataDir, skinsJSON)); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadJSON reads a roster written by SaveJSON.
func LoadJSON(path string) (Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Roster
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for name, op := range r {
		if op.Name == "" {
			op.Name = name
			r[name] = op
		}
	}
	return r, nil
}

// SaveJSON writes the roster as indented JSON, replacing path atomically.
func SaveJSON(r Roster, path string) error {
	b, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, b, 0o644)
}

func loadCSV(path string) (Roster, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	cr := csv.NewReader(fp)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			v := strings.TrimSpace(row[idx])
			if v == "nan" {
				return ""
			}
			return v
		}
		return ""
	}

	out := Roster{}
	for _, row := range rows[1:] {
		name := get(row, "name")
		if name == "" {
			continue
		}
		stars, _ := strconv.Atoi(get(row, "num_stars"))
		out[name] = Operator{
			Name:   name,
			Rarity: stars,
			Elite1: get(row, "e0_img"),
			Elite2: get(row, "e2_img"),
			Color:  get(row, "color"),
		}
	}
	return out, nil
}

func mergeSkins(r Roster, path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var skins map[string]map[string]string
	if err := json.Unmarshal(b, &skins); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for name, s := range skins {
		op, ok := r[name]
		if !ok {
			continue
		}
		op.Skins = s
		r[name] = op
	}
	return nil
}

// Names returns the roster's operator names in alphabetical order.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
