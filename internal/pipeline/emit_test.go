package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itemgen/internal"
)

func TestEncodeItemsJSONLayout(t *testing.T) {
	names := internal.SentinelNames()
	names[1] = "Potion <L> & \"Mega\""
	names[0] = "回復薬"
	blob, err := EncodeItemsJSON([]internal.ParsedItem{{ID: 0, FixedID: 1, Label: "NONE", Name: names}})
	if err != nil {
		t.Fatal(err)
	}
	text := string(blob)

	if !strings.HasPrefix(text, "[\n    {\n        \"id\": 0,\n        \"fixedId\": 1,\n        \"label\": \"NONE\",\n        \"name\": {\n            \"0\": \"回復薬\",\n            \"1\": ") {
		t.Fatalf("unexpected layout:\n%s", text)
	}
	if !strings.Contains(text, `"Potion <L> & \"Mega\""`) {
		t.Fatalf("html characters should stay literal:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatal("unexpected trailing newline")
	}
	if strings.Index(text, `"7"`) > strings.Index(text, `"10"`) || strings.Index(text, `"21"`) > strings.Index(text, `"32"`) {
		t.Fatalf("language keys out of table order:\n%s", text)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded[0]["name"].(map[string]any)) != len(internal.Languages) {
		t.Fatalf("decoded name=%v", decoded[0]["name"])
	}
}

func TestEncodeItemsJSONEmpty(t *testing.T) {
	blob, err := EncodeItemsJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "[]" {
		t.Fatalf("got %q", blob)
	}
}

func TestWriteItemsJSONCreatesParentDirs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "src", "assets", "items.json")
	if err := WriteItemsJSON(nil, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeItemsJSONKeepsLineSeparatorsLiteral(t *testing.T) {
	names := internal.SentinelNames()
	names[1] = "a\u2028b"
	names[2] = "c\u2029d"
	names[3] = `e\u2028f`
	blob, err := EncodeItemsJSON([]internal.ParsedItem{{ID: 1, FixedID: 1, Label: "X", Name: names}})
	if err != nil {
		t.Fatal(err)
	}
	text := string(blob)

	if !strings.Contains(text, "\"1\": \"a\u2028b\"") || !strings.Contains(text, "\"2\": \"c\u2029d\"") {
		t.Fatalf("separators should be literal:\n%s", text)
	}
	if !strings.Contains(text, `"3": "e\\u2028f"`) {
		t.Fatalf("escaped backslash must stay escaped:\n%s", text)
	}

	var decoded []struct {
		Name internal.Names `json:"name"`
	}
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded[0].Name != names {
		t.Fatalf("round trip mismatch: %v", decoded[0].Name)
	}
}
