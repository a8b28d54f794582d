package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ssor/bom"

	"itemgen/internal"
)

const guidColumn = "guid"

func LoadLocalization(path string) (map[string]internal.LocalizationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := DecodeLocalization(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse localization file %s: %w", path, err)
	}
	return rows, nil
}

func DecodeLocalization(r io.Reader) (map[string]internal.LocalizationRow, error) {
	br, err := bom.NewReaderWithoutBom(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}

	guidIdx := -1
	for i, h := range headers {
		if h == guidColumn {
			guidIdx = i
			break
		}
	}
	if guidIdx < 0 {
		return nil, fmt.Errorf("header has no %s column", guidColumn)
	}

	langIdx := make([]int, len(internal.Languages))
	for i, lang := range internal.Languages {
		langIdx[i] = -1
		for j, h := range headers {
			if h == lang.Column {
				langIdx[i] = j
				break
			}
		}
	}

	out := map[string]internal.LocalizationRow{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		guid := pickField(rec, guidIdx)
		row := internal.LocalizationRow{GUID: guid, Names: internal.SentinelNames()}
		for i, idx := range langIdx {
			if v := pickField(rec, idx); v != "" {
				row.Names[i] = v
			}
		}
		out[guid] = row
	}
	return out, nil
}

func pickField(rec []string, idx int) string {
	if idx >= 0 && idx < len(rec) {
		return rec[idx]
	}
	return ""
}
