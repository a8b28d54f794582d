package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "ITEM_0648", want: "ITEM_0648"},
		{input: " item-0648 ", want: "ITEM_0648"},
		{input: "item__0648_", want: "ITEM_0648"},
		{input: "Item.0648/b", want: "ITEM_0648_B"},
		{input: "アイテム", want: ""},
	}
	for _, tc := range cases {
		if got := NormalizeLabel(tc.input); got != tc.want {
			t.Fatalf("NormalizeLabel(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("ITEM_0648_A_potion")
	want := []string{"ITEM", "0648", "POTION"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDiceCoefficient(t *testing.T) {
	if got := DiceCoefficient("ITEM_0648", "ITEM_0648"); got != 1 {
		t.Fatalf("identical=%v", got)
	}
	if got := DiceCoefficient("", "ITEM"); got != 0 {
		t.Fatalf("empty=%v", got)
	}
	near := DiceCoefficient("ITEM_0648", "ITEM_0649")
	far := DiceCoefficient("ITEM_0648", "WEAPON_12")
	if !(near > far) {
		t.Fatalf("near=%v far=%v", near, far)
	}
}
