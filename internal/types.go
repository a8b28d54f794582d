package internal

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const Sentinel = "---"

type Language struct {
	Code   int
	Column string
}

var Languages = [...]Language{
	{Code: 0, Column: "Japanese"},
	{Code: 1, Column: "English"},
	{Code: 2, Column: "French"},
	{Code: 3, Column: "Italian"},
	{Code: 4, Column: "German"},
	{Code: 5, Column: "Spanish"},
	{Code: 6, Column: "Russian"},
	{Code: 7, Column: "Polish"},
	{Code: 10, Column: "PortugueseBr"},
	{Code: 11, Column: "Korean"},
	{Code: 12, Column: "TraditionalChinese"},
	{Code: 13, Column: "SimplifiedChinese"},
	{Code: 21, Column: "Arabic"},
	{Code: 32, Column: "LatinAmericanSpanish"},
}

type LabelIDMap map[string]int

type RawItemEntry struct {
	ItemID      string
	RawNameGUID *string
}

// Names holds one display string per entry of Languages, in the same order.
type Names [len(Languages)]string

type LocalizationRow struct {
	GUID  string
	Names Names
}

func SentinelNames() Names {
	var n Names
	for i := range n {
		n[i] = Sentinel
	}
	return n
}

func (n Names) Get(code int) (string, bool) {
	for i, lang := range Languages {
		if lang.Code == code {
			return n[i], true
		}
	}
	return "", false
}

func (n Names) Map() map[string]string {
	out := make(map[string]string, len(n))
	for i, lang := range Languages {
		out[strconv.Itoa(lang.Code)] = n[i]
	}
	return out
}

func (n Names) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, lang := range Languages {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`"` + strconv.Itoa(lang.Code) + `":`)
		if err := enc.Encode(n[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (n *Names) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = SentinelNames()
	for i, lang := range Languages {
		if v, ok := raw[strconv.Itoa(lang.Code)]; ok && v != "" {
			n[i] = v
		}
	}
	return nil
}

// MarshalYAML keeps the language-table order, which a plain map would lose.
func (n Names) MarshalYAML() (any, error) {
	out := make([]map[string]string, 0, len(n))
	for i, lang := range Languages {
		out = append(out, map[string]string{strconv.Itoa(lang.Code): n[i]})
	}
	return out, nil
}

type ParsedItem struct {
	ID      int    `json:"id" yaml:"id"`
	FixedID int    `json:"fixedId" yaml:"fixedId"`
	Label   string `json:"label" yaml:"label"`
	Name    Names  `json:"name" yaml:"name"`
}

type WarningKind string

const (
	WarnUnparsedItemID      WarningKind = "unparsed_item_id"
	WarnUnresolvedLabel     WarningKind = "unresolved_label"
	WarnMissingLocalization WarningKind = "missing_localization"
)

type Warning struct {
	Kind    WarningKind
	Subject string
	Detail  string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnUnparsedItemID:
		return "Warning: Could not parse _ItemId: " + w.Subject
	case WarnUnresolvedLabel:
		msg := "Warning: Label '" + w.Subject + "' not found in enum map, using id 0"
		if w.Detail != "" {
			msg += " (closest: " + w.Detail + ")"
		}
		return msg
	case WarnMissingLocalization:
		return "Warning: No localization row for guid " + w.Subject + " (" + w.Detail + ")"
	default:
		return "Warning: " + w.Subject
	}
}

type RunRecord struct {
	ID          int
	TraceID     string
	Fingerprint string
	OutputPath  string
	ItemCount   int
	WarnCount   int
	DurationMs  float64
	CreatedAt   string
}
