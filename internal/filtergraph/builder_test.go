package filtergraph

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplitBoundaries(t *testing.T) {
	bounds, cursor := splitBoundaries(0, Interval{Start: 3.0, End: 10.0}, 0.25)

	if bounds.beforeFrom != 0 || bounds.beforeTo != 3.25 {
		t.Errorf("before = (%v, %v), want (0, 3.25)", bounds.beforeFrom, bounds.beforeTo)
	}
	if bounds.duringFrom != 3.25 || bounds.duringTo != 9.75 {
		t.Errorf("during = (%v, %v), want (3.25, 9.75)", bounds.duringFrom, bounds.duringTo)
	}
	if cursor != 9.75 {
		t.Errorf("cursor = %v, want 9.75", cursor)
	}

	// The next call starts where the previous silence left off.
	bounds, cursor = splitBoundaries(cursor, Interval{Start: 20.0, End: 24.0}, 0.25)
	if bounds.beforeFrom != 9.75 || bounds.beforeTo != 20.25 {
		t.Errorf("second before = (%v, %v), want (9.75, 20.25)", bounds.beforeFrom, bounds.beforeTo)
	}
	if cursor != 23.75 {
		t.Errorf("second cursor = %v, want 23.75", cursor)
	}
}

func TestBuildSingleSilence(t *testing.T) {
	silences := []Interval{{Start: 3.0, End: 10.0}}

	got, err := Build(silences, 0.25, 2.0, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"[0:v]trim=start=0:end=3.25,setpts=PTS-STARTPTS[v1];",
		"[0:v]trim=start=3.25:end=9.75,setpts=PTS-STARTPTS,setpts=0.5*PTS[v2];",
		"[0:v]trim=start=9.75,setpts=PTS-STARTPTS[v3];",
		"[0:a]atrim=start=0:end=3.25,asetpts=PTS-STARTPTS[a1];",
		"[0:a]atrim=start=3.25:end=9.75,asetpts=PTS-STARTPTS,atempo=2[a2];",
		"[0:a]atrim=start=9.75,asetpts=PTS-STARTPTS[a3];",
		"[v1][a1][v2][a2] [v3][a3] concat=n=3:v=1:a=1[v][a]",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("graph mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildChainedTempoStages(t *testing.T) {
	silences := []Interval{{Start: 5.0, End: 12.0}}

	got, err := Build(silences, 0.5, 3.0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(got, ",asetpts=PTS-STARTPTS,atempo=2,atempo=1.5[a2];") {
		t.Errorf("missing chained atempo stages:\n%s", got)
	}
	if !strings.Contains(got, ",setpts=PTS-STARTPTS,setpts=0.5*PTS,setpts=0.666667*PTS[v2];") {
		t.Errorf("missing chained setpts stages:\n%s", got)
	}
}

func TestBuildGainLabelSwitching(t *testing.T) {
	silences := []Interval{{Start: 3.0, End: 10.0}}

	t.Run("nonzero gain routes through [an]", func(t *testing.T) {
		gain := Gain(-20.0, -18.0)
		if gain != 2.0 {
			t.Fatalf("Gain(-20, -18) = %v, want 2", gain)
		}

		got, err := Build(silences, 0.25, 2.0, gain)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, "concat=n=3:v=1:a=1[v][an];\n[an]volume=2.0dB[a]\n") {
			t.Errorf("missing volume stage:\n%s", got)
		}
		if strings.Contains(got, "[v][a]\n") {
			t.Errorf("concat should not write [a] directly when gain is pending:\n%s", got)
		}
	})

	t.Run("zero gain writes [a] directly", func(t *testing.T) {
		gain := Gain(-18.0, -18.0)
		if gain != 0 {
			t.Fatalf("Gain(-18, -18) = %v, want 0", gain)
		}

		got, err := Build(silences, 0.25, 2.0, gain)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(got, "concat=n=3:v=1:a=1[v][a]\n") {
			t.Errorf("concat should end the graph with [a]:\n%s", got)
		}
		if strings.Contains(got, "[an]") {
			t.Errorf("[an] must not appear when gain is zero:\n%s", got)
		}
	})
}

func TestBuildNodeMonotonicity(t *testing.T) {
	silences := []Interval{
		{Start: 5.0, End: 9.0},
		{Start: 15.0, End: 19.0},
		{Start: 25.0, End: 29.0},
	}

	got, err := Build(silences, 0.5, 4.0, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Three internal silences: pairs 1..3 plus one trailing pair, nodes 1..7.
	for n := 1; n <= 7; n++ {
		if !strings.Contains(got, fmt.Sprintf("[v%d];", n)) {
			t.Errorf("missing video node v%d:\n%s", n, got)
		}
		if !strings.Contains(got, fmt.Sprintf("[a%d];", n)) {
			t.Errorf("missing audio node a%d:\n%s", n, got)
		}
	}
	if strings.Contains(got, "[v8]") {
		t.Errorf("unexpected node v8:\n%s", got)
	}

	if !strings.Contains(got, "[v1][a1][v2][a2] [v3][a3][v4][a4] [v5][a5][v6][a6] [v7][a7] concat=n=7:v=1:a=1[v][a]") {
		t.Errorf("concat groups out of order:\n%s", got)
	}
}

func TestBuildNoInternalSilences(t *testing.T) {
	// Leading silence plus an open-ended trailing one: both are absorbed by
	// the live segments, leaving a single pass-through pair.
	silences := []Interval{
		{Start: 0.0, End: 3.0},
		{Start: 10.0, OpenEnd: true},
	}

	got, err := Build(silences, 0.25, 8.0, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"[0:v]trim=start=0,setpts=PTS-STARTPTS[v1];",
		"[0:a]atrim=start=0,asetpts=PTS-STARTPTS[a1];",
		"[v1][a1] concat=n=1:v=1:a=1[v][a]",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("degenerate graph mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildRejectsBadSpeedup(t *testing.T) {
	if _, err := Build(nil, 0.25, 0, 0); err == nil {
		t.Error("Build with zero speedup should fail")
	}
	if _, err := Build(nil, 0.25, -2, 0); err == nil {
		t.Error("Build with negative speedup should fail")
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	b, err := NewBuilder(0.25, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	b.AddSilence(Interval{Start: 3.0, End: 10.0})

	first := b.Render(1.5)
	second := b.Render(1.5)
	if first != second {
		t.Errorf("Render mutated builder state:\n%s\nvs\n%s", first, second)
	}
}
