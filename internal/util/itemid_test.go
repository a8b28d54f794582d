package util

import "testing"

func TestParseItemID(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		fixedID int
		label   string
		ok      bool
	}{
		{name: "regular", input: "[622]ITEM_0648", fixedID: 622, label: "ITEM_0648", ok: true},
		{name: "none", input: "[1]NONE", fixedID: 1, label: "NONE", ok: true},
		{name: "zero", input: "[0]INVALID", fixedID: 0, label: "INVALID", ok: true},
		{name: "leading zeros", input: "[007]ITEM", fixedID: 7, label: "ITEM", ok: true},
		{name: "label keeps brackets", input: "[3][4]X", fixedID: 3, label: "[4]X", ok: true},
		{name: "label stops at newline", input: "[5]A\nB", fixedID: 5, label: "A", ok: true},
		{name: "arabic-indic digits", input: "[\u0663]ITEM_C", fixedID: 3, label: "ITEM_C", ok: true},
		{name: "fullwidth digits", input: "[\uff11\uff12]ITEM_D", fixedID: 12, label: "ITEM_D", ok: true},
		{name: "mixed scripts", input: "[1\u0660\u0967]ITEM_E", fixedID: 101, label: "ITEM_E", ok: true},
		{name: "no brackets", input: "BADSTRING", ok: false},
		{name: "empty label", input: "[12]", ok: false},
		{name: "negative", input: "[-1]ITEM", ok: false},
		{name: "prefix required", input: " [1]ITEM", ok: false},
		{name: "overflow", input: "[99999999999999999999999]ITEM", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fixedID, label, ok := ParseItemID(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok=%v want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if fixedID != tc.fixedID || label != tc.label {
				t.Fatalf("got (%d, %q) want (%d, %q)", fixedID, label, tc.fixedID, tc.label)
			}
		})
	}
}
