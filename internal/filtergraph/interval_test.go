package filtergraph

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		silences []Interval
		want     []Interval
	}{
		{
			name: "internal silences pass through",
			silences: []Interval{
				{Start: 3.0, End: 10.0},
				{Start: 20.0, End: 25.0},
			},
			want: []Interval{
				{Start: 3.0, End: 10.0},
				{Start: 20.0, End: 25.0},
			},
		},
		{
			name: "leading silence dropped",
			silences: []Interval{
				{Start: 0.0, End: 3.0},
				{Start: 10.0, End: 15.0},
			},
			want: []Interval{{Start: 10.0, End: 15.0}},
		},
		{
			name: "open-ended trailing silence dropped",
			silences: []Interval{
				{Start: 10.0, End: 15.0},
				{Start: 40.0, OpenEnd: true},
			},
			want: []Interval{{Start: 10.0, End: 15.0}},
		},
		{
			name: "both boundaries dropped",
			silences: []Interval{
				{Start: 0.0, End: 3.0},
				{Start: 10.0, End: 15.0},
				{Start: 40.0, OpenEnd: true},
			},
			want: []Interval{{Start: 10.0, End: 15.0}},
		},
		{
			name:     "single interval matching both conditions dropped once",
			silences: []Interval{{Start: 0.0, OpenEnd: true}},
			want:     []Interval{},
		},
		{
			name:     "empty input",
			silences: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.silences)
			if len(got) != len(tt.want) {
				t.Fatalf("Truncate returned %d intervals, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !reflect.DeepEqual(got[i], tt.want[i]) {
					t.Errorf("interval %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		silences := []Interval{
			{Start: 0.0, End: 3.0},
			{Start: 10.0, End: 15.0},
			{Start: 40.0, OpenEnd: true},
		}
		once := Truncate(silences)
		twice := Truncate(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Truncate is not idempotent: %+v vs %+v", once, twice)
		}
	})
}
