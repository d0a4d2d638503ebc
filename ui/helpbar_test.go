package ui

import (
	"strings"
	"testing"
)

func hintKeys(hints []HelpHint) []string {
	keys := make([]string, len(hints))
	for i, h := range hints {
		keys[i] = h.Key
	}
	return keys
}

// TestGetActionHints tests the left section for every focus target
func TestGetActionHints(t *testing.T) {
	tests := []struct {
		name         string
		ctx          HelpBarContext
		expectedKeys []string
	}{
		{
			name:         "History item actions",
			ctx:          HelpBarContext{Focus: FocusHistory},
			expectedKeys: []string{"c", "e", "r", "a", "d", "x"},
		},
		{
			name:         "History while editing",
			ctx:          HelpBarContext{Focus: FocusHistory, Editing: true},
			expectedKeys: []string{"↵", "esc"},
		},
		{
			name:         "History with menu open",
			ctx:          HelpBarContext{Focus: FocusHistory, MenuOpen: true},
			expectedKeys: []string{"↵", "esc"},
		},
		{
			name:         "Answer with chart",
			ctx:          HelpBarContext{Focus: FocusAnswer, HasChart: true},
			expectedKeys: []string{"s"},
		},
		{
			name:         "Answer without chart",
			ctx:          HelpBarContext{Focus: FocusAnswer},
			expectedKeys: []string{},
		},
		{
			name:         "Repositories",
			ctx:          HelpBarContext{Focus: FocusRepos},
			expectedKeys: []string{"↵", "A"},
		},
		{
			name:         "Files",
			ctx:          HelpBarContext{Focus: FocusFiles},
			expectedKeys: []string{"↵", "+/-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hintKeys(getActionHints(tt.ctx))
			if strings.Join(got, ",") != strings.Join(tt.expectedKeys, ",") {
				t.Errorf("Expected keys %v, got %v", tt.expectedKeys, got)
			}
		})
	}
}

// TestArchivedHintFollowsState tests the archive toggle label
func TestArchivedHintFollowsState(t *testing.T) {
	hints := getActionHints(HelpBarContext{Focus: FocusRepos})
	if hints[1].Desc != "show archived" {
		t.Errorf("Expected 'show archived', got %q", hints[1].Desc)
	}

	hints = getActionHints(HelpBarContext{Focus: FocusRepos, ShowArchived: true})
	if hints[1].Desc != "hide archived" {
		t.Errorf("Expected 'hide archived', got %q", hints[1].Desc)
	}
}

// TestGetNavigationHints tests the center section
func TestGetNavigationHints(t *testing.T) {
	tests := []struct {
		name          string
		ctx           HelpBarContext
		expectedCount int
		expectedDesc  string
	}{
		{"Answer scrolls", HelpBarContext{Focus: FocusAnswer}, 1, "scroll"},
		{"Repositories select", HelpBarContext{Focus: FocusRepos}, 1, "select"},
		{"Files select", HelpBarContext{Focus: FocusFiles}, 1, "select"},
		{"History", HelpBarContext{Focus: FocusHistory}, 3, "select"},
		{"History editing", HelpBarContext{Focus: FocusHistory, Editing: true}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := getNavigationHints(tt.ctx)
			if len(hints) != tt.expectedCount {
				t.Fatalf("Expected %d hints, got %d", tt.expectedCount, len(hints))
			}
			if tt.expectedCount > 0 && hints[0].Desc != tt.expectedDesc {
				t.Errorf("Expected first hint %q, got %q", tt.expectedDesc, hints[0].Desc)
			}
		})
	}
}

// TestGetAlwaysHints tests the always-visible hints
func TestGetAlwaysHints(t *testing.T) {
	hints := getAlwaysHints()

	expectedKeys := []string{"tab", "?", "q"}
	if len(hints) != len(expectedKeys) {
		t.Fatalf("Expected %d always hints, got %d", len(expectedKeys), len(hints))
	}
	for i, expectedKey := range expectedKeys {
		if hints[i].Key != expectedKey {
			t.Errorf("Expected key %s, got %s", expectedKey, hints[i].Key)
		}
	}
}

// TestHelpHintFormat tests the Format method
func TestHelpHintFormat(t *testing.T) {
	formatted := HelpHint{Key: "x", Desc: "export"}.Format()
	if !strings.Contains(formatted, "x export") {
		t.Errorf("Formatted hint missing text: %q", formatted)
	}
}

// TestFormatHints tests the formatHints function
func TestFormatHints(t *testing.T) {
	if got := formatHints(nil); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}

	got := formatHints([]HelpHint{{Key: "c", Desc: "copy"}, {Key: "e", Desc: "edit"}})
	if !strings.Contains(got, "c copy") || !strings.Contains(got, "e edit") {
		t.Errorf("Expected both hints, got %q", got)
	}
}

// TestRenderContextualHelpBar tests the main help bar rendering function
func TestRenderContextualHelpBar(t *testing.T) {
	tests := []struct {
		name  string
		ctx   HelpBarContext
		width int
		want  []string
	}{
		{"History", HelpBarContext{Focus: FocusHistory}, 120, []string{"c copy", "m menu", "q quit"}},
		{"Answer without chart", HelpBarContext{Focus: FocusAnswer}, 80, []string{"scroll", "? help"}},
		{"Very narrow width", HelpBarContext{Focus: FocusHistory}, 20, []string{"copy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderContextualHelpBar(tt.ctx, tt.width)
			for _, want := range tt.want {
				if !strings.Contains(result, want) {
					t.Errorf("Expected help bar to contain %q, got %q", want, result)
				}
			}
		})
	}
}
