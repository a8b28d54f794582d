package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"itemgen/internal"
)

const sampleItemData = `[
  {"app.user_data.EnemyData": {"_Values": [{"x": 1}]}},
  "stray string chunk",
  {"app.user_data.ItemData": {"_Values": [
    {"app.user_data.ItemData.cData": {"_ItemId": "[1]NONE", "_RawName": "G1"}},
    {"app.user_data.ItemData.cData": {"_ItemId": "[622]ITEM_0648", "_RawName": null}},
    {"app.user_data.ItemData.cData": {"_ItemId": "", "_RawName": "G2"}},
    {"app.user_data.ItemData.cData": {"_RawName": "G3"}},
    {"other": {}}
  ]}},
  {"app.user_data.ItemData": {"_Values": [
    {"app.user_data.ItemData.cData": {"_ItemId": "BADSTRING"}}
  ]}}
]`

func TestDecodeItemEntries(t *testing.T) {
	got, err := DecodeItemEntries([]byte(sampleItemData))
	if err != nil {
		t.Fatal(err)
	}
	want := []internal.RawItemEntry{
		{ItemID: "[1]NONE", RawNameGUID: sp("G1")},
		{ItemID: "[622]ITEM_0648"},
		{ItemID: "BADSTRING"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeItemEntriesEmpty(t *testing.T) {
	got, err := DecodeItemEntries([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("len=%d", len(got))
	}
}

func TestDecodeItemEntriesRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "top level object", data: `{"app.user_data.ItemData": {"_Values": []}}`},
		{name: "values not a list", data: `[{"app.user_data.ItemData": {"_Values": {}}}]`},
		{name: "item data not object", data: `[{"app.user_data.ItemData": [1]}]`},
		{name: "numeric item id", data: `[{"app.user_data.ItemData": {"_Values": [{"app.user_data.ItemData.cData": {"_ItemId": 5}}]}}]`},
		{name: "truncated", data: `[{"app.user_data.ItemData": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeItemEntries([]byte(tc.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadItemEntriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itemData.user.3.json")
	if err := os.WriteFile(path, []byte(sampleItemData), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadItemEntries(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d", len(got))
	}
}

func sp(v string) *string { return &v }
