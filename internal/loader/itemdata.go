package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"itemgen/internal"
)

const itemDataNamespace = "app.user_data.ItemData"

type itemDataChunk struct {
	Values []itemDataValue `json:"_Values"`
}

type itemDataValue struct {
	CData *itemCData `json:"app.user_data.ItemData.cData"`
}

type itemCData struct {
	ItemID  *string `json:"_ItemId"`
	RawName *string `json:"_RawName"`
}

func LoadItemEntries(path string) ([]internal.RawItemEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item data file %s: %w", path, err)
	}
	entries, err := DecodeItemEntries(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse item data file %s: %w", path, err)
	}
	return entries, nil
}

func DecodeItemEntries(data []byte) ([]internal.RawItemEntry, error) {
	var chunks []json.RawMessage
	if err := decodeStrict(data, '[', &chunks); err != nil {
		return nil, err
	}

	out := make([]internal.RawItemEntry, 0)
	for i, rawChunk := range chunks {
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(rawChunk, &keyed); err != nil {
			continue
		}
		rawItemData, ok := keyed[itemDataNamespace]
		if !ok || isNull(rawItemData) {
			continue
		}

		var chunk itemDataChunk
		if err := decodeStrict(rawItemData, '{', &chunk); err != nil {
			return nil, fmt.Errorf("chunk %d: %s: %w", i, itemDataNamespace, err)
		}
		for _, value := range chunk.Values {
			if value.CData == nil || value.CData.ItemID == nil || *value.CData.ItemID == "" {
				continue
			}
			out = append(out, internal.RawItemEntry{
				ItemID:      *value.CData.ItemID,
				RawNameGUID: value.CData.RawName,
			})
		}
	}
	return out, nil
}
