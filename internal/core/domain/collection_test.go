package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2024-05-01T10:00:00Z"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"fractional", `"2024-05-01T10:00:00.123Z"`, time.Date(2024, 5, 1, 10, 0, 0, 123e6, time.UTC)},
		{"no zone", `"2024-05-01T10:00:00"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"date only", `"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"epoch ms", `1714557600000`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"garbage", `"yesterday"`, time.Time{}},
		{"empty", `""`, time.Time{}},
		{"null", `null`, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tc.raw), &ts); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if !ts.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, ts.Time)
			}
		})
	}
}

func TestTimestamp_NonScalarReadsAsZero(t *testing.T) {
	var list []Collection
	raw := `[{"_id":"a","createdAt":{"at":1}},{"_id":"b","createdAt":true},{"_id":"c","createdAt":"2024-01-01"}]`
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("expected the list to decode, got %v", err)
	}
	if len(list) != 3 || !list[0].CreatedAt.IsZero() || !list[1].CreatedAt.IsZero() || list[2].CreatedAt.IsZero() {
		t.Fatalf("unexpected timestamps: %+v", list)
	}
}

func TestTimestamp_MarshalZeroIsNull(t *testing.T) {
	out, err := json.Marshal(Collection{ID: "a"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if v, ok := back["createdAt"]; !ok || v != nil {
		t.Fatalf("expected createdAt null, got %s", out)
	}
}

func TestCollection_DualIdentifier(t *testing.T) {
	var list []Collection
	if err := json.Unmarshal([]byte(`[{"_id":"a","title":"A"},{"id":"b","title":"B"}]`), &list); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if list[0].Key() != "a" || list[1].Key() != "b" {
		t.Fatalf("unexpected keys %q %q", list[0].Key(), list[1].Key())
	}
	if !list[1].Matches("b") || list[1].Matches("") || list[0].Matches("b") {
		t.Fatalf("unexpected Matches results")
	}
}

func TestCollectionPatch_Apply(t *testing.T) {
	title := "New"
	likes := 0
	original := Collection{ID: "a", Title: "Old", Description: "keep", Likes: 5, Creator: &CreatorSummary{ID: "u1"}}
	patch := CollectionPatch{Title: &title, Likes: &likes}

	got := patch.Apply(original)

	want := Collection{ID: "a", Title: "New", Description: "keep", Likes: 0, Creator: &CreatorSummary{ID: "u1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}
	if original.Title != "Old" {
		t.Fatalf("Apply mutated its input")
	}
	if patch.IsEmpty() || !(CollectionPatch{}).IsEmpty() {
		t.Fatalf("unexpected IsEmpty results")
	}
}
