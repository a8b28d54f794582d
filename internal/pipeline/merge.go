package pipeline

import (
	"cmp"
	"slices"

	"itemgen/internal"
	"itemgen/internal/catalog"
	"itemgen/internal/util"
)

type MergeResult struct {
	Items    []internal.ParsedItem
	Warnings []internal.Warning
}

type Merger struct {
	index    *catalog.Index
	messages map[string]internal.LocalizationRow
	suggest  bool
}

func NewMerger(labels internal.LabelIDMap, messages map[string]internal.LocalizationRow, suggest bool) *Merger {
	return &Merger{index: catalog.BuildIndex(labels), messages: messages, suggest: suggest}
}

func (m *Merger) Merge(entries []internal.RawItemEntry) MergeResult {
	res := MergeResult{Items: make([]internal.ParsedItem, 0, len(entries))}
	for _, entry := range entries {
		fixedID, label, ok := util.ParseItemID(entry.ItemID)
		if !ok {
			res.Warnings = append(res.Warnings, internal.Warning{Kind: internal.WarnUnparsedItemID, Subject: entry.ItemID})
			continue
		}

		id, found := m.index.Lookup(label)
		if !found {
			// Unresolved labels share id 0 with NONE; the warning kind keeps them apart.
			id = 0
			w := internal.Warning{Kind: internal.WarnUnresolvedLabel, Subject: label}
			if m.suggest {
				if s, ok := m.index.Suggest(label); ok {
					w.Detail = s.Label
				}
			}
			res.Warnings = append(res.Warnings, w)
		}

		names := internal.SentinelNames()
		if entry.RawNameGUID != nil {
			if row, ok := m.messages[*entry.RawNameGUID]; ok {
				names = row.Names
			} else {
				res.Warnings = append(res.Warnings, internal.Warning{Kind: internal.WarnMissingLocalization, Subject: *entry.RawNameGUID, Detail: label})
			}
		}

		res.Items = append(res.Items, internal.ParsedItem{ID: id, FixedID: fixedID, Label: label, Name: names})
	}

	slices.SortStableFunc(res.Items, func(a, b internal.ParsedItem) int {
		return cmp.Compare(a.FixedID, b.FixedID)
	})
	return res
}
