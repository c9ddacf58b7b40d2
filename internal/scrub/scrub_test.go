package scrub

import (
	"strings"
	"testing"
)

func TestScriptPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "talk.mp4", want: "talk.filter_script"},
		{in: "/media/episodes/e01.mkv", want: "/media/episodes/e01.filter_script"},
		{in: "no-extension", want: "no-extension.filter_script"},
	}
	for _, tt := range tests {
		if got := ScriptPath(tt.in); got != tt.want {
			t.Errorf("ScriptPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyCommand(t *testing.T) {
	r := &Result{
		InputPath:  "/media/talk.mp4",
		ScriptPath: "/media/talk.filter_script",
	}

	cmd := r.ApplyCommand()
	for _, want := range []string{
		`-filter_complex_script "/media/talk.filter_script"`,
		`-map "[v]"`,
		`-map "[a]"`,
		`"/media/talk-scrubbed.mp4"`,
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("ApplyCommand() = %q, missing %q", cmd, want)
		}
	}
}
