package validate

import (
	"strings"
	"testing"
)

func TestParseJSON_Recovery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want recovery
	}{
		{"plain object", `{"ok":true}`, recoverAsIs},
		{"json fence", "```json\n{\"ok\":true}\n```", recoverFence},
		{"unterminated fence", "```\n{\"ok\":true}", recoverFence},
		{"prose then fence", "Here is the analysis:\n```json\n{\"ok\":true}\n```\nHope it helps.", recoverFence},
		{"prose around object", `Sure! {"ok":true} Let me know.`, recoverSpan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, how, err := parseJSON(tt.in)
			if err != nil {
				t.Fatalf("parseJSON() error = %v", err)
			}
			if how != tt.want {
				t.Errorf("recovery = %q, want %q", how, tt.want)
			}
			m, _ := got.(map[string]any)
			if ok, _ := m["ok"].(bool); !ok {
				t.Errorf("expected ok=true, got %#v", got)
			}
		})
	}
}

func TestParseJSON_FailureNamesSteps(t *testing.T) {
	_, _, err := parseJSON("Sorry, {not json} here")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"as-is", "embedded span"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}

	if _, _, err := parseJSON("   "); err == nil || err.Error() != "empty output" {
		t.Errorf("blank input error = %v, want empty output", err)
	}
}

func TestOutermostSpan(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`noise {"a":1} trailing`, `{"a":1}`},
		{`list: [1,2] done`, `[1,2]`},
		{`no json here`, ``},
		{`} backwards {`, ``},
	}
	for _, tt := range tests {
		if got := outermostSpan(tt.in); got != tt.want {
			t.Errorf("outermostSpan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
