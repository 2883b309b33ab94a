package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/cashburn/internal/tui/components"
	"github.com/theirongolddev/cashburn/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

// Walks every column of every tab's hitbox and checks the mapping agrees
// with the widths RenderTabBar actually draws.
func TestTabAtXHitsEveryTab(t *testing.T) {
	app := App{activeTab: 0}

	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == app.activeTab)

		for _, x := range []int{pos, pos + w/2, pos + w - 1} {
			if got := app.tabAtX(x); got != i {
				t.Errorf("tabAtX(%d) = %d, want %d (%s)", x, got, i, tab.Name)
			}
		}
		pos += w

		// Separator column between tabs belongs to no tab
		if i < len(components.Tabs)-1 {
			if got := app.tabAtX(pos); got != -1 {
				t.Errorf("tabAtX(%d) on separator = %d, want -1", pos, got)
			}
			pos++
		}
	}

	if got := app.tabAtX(pos + 3); got != -1 {
		t.Errorf("tabAtX beyond bar = %d, want -1", got)
	}
}

// The Settings tab drops its "[x]" hint while active, which shrinks its
// hitbox. tabAtX must follow the active tab.
func TestTabAtXTracksActiveTab(t *testing.T) {
	app := App{activeTab: len(components.Tabs) - 1}

	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == app.activeTab)
		if got := app.tabAtX(pos + w - 1); got != i {
			t.Errorf("tab %d (%s): tabAtX(%d) = %d, want %d", i, tab.Name, pos+w-1, got, i)
		}
		pos += w
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
}

func TestRenderTabBarPadsToWidth(t *testing.T) {
	bar := components.RenderTabBar(0, 120)
	if got := lipgloss.Width(bar); got != 120 {
		t.Errorf("tab bar width = %d, want 120", got)
	}
}
