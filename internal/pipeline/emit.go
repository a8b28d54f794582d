package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"itemgen/internal"
)

func EncodeItemsJSON(items []internal.ParsedItem) ([]byte, error) {
	if items == nil {
		items = []internal.ParsedItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 literally; encoding/json always escapes them.
func unescapeLineSeparators(blob []byte) []byte {
	if !bytes.Contains(blob, []byte(`\u202`)) {
		return blob
	}
	out := make([]byte, 0, len(blob))
	for i := 0; i < len(blob); i++ {
		if blob[i] != '\\' || i+1 >= len(blob) {
			out = append(out, blob[i])
			continue
		}
		if i+5 < len(blob) && blob[i+1] == 'u' && string(blob[i+2:i+5]) == "202" && (blob[i+5] == '8' || blob[i+5] == '9') {
			if blob[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, blob[i], blob[i+1])
		i++
	}
	return out
}

func WriteItemsJSON(items []internal.ParsedItem, outputPath string) error {
	blob, err := EncodeItemsJSON(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0o644)
}
