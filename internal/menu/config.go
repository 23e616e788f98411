package menu

import (
	"fmt"
	"strings"
	"time"
)

// Defaults for Config. Timings match the CSS transitions the menu styling
// assumes.
const (
	DefaultMenuID          = "context-menu"
	DefaultSurfaceID       = "editor"
	DefaultSelectionMenuID = "selection-menu"
	DefaultVisibleClass    = "visible"
	DefaultSubmenuClass    = "submenu"
	DefaultMaxHistorySize  = 50
	DefaultDebounceDelay   = 300 * time.Millisecond
	DefaultViewportDelay   = 100 * time.Millisecond
	DefaultHoverOpenDelay  = 150 * time.Millisecond
	DefaultHoverCloseDelay = 100 * time.Millisecond
	DefaultSubmenuHide     = 200 * time.Millisecond
	DefaultPointerOffsetX  = 20
	DefaultMargin          = 5
)

// Class names and attributes the menu markup relies on.
const (
	ClassItem        = "menu-item"
	ClassSeparator   = "separator"
	ClassDisabled    = "disabled"
	ClassHasSubmenu  = "has-submenu"
	ClassFocused     = "focused"
	ClassExpanded    = "expanded"
	AttrAction       = "data-action"
	AttrAriaDisabled = "aria-disabled"
	AttrAriaExpanded = "aria-expanded"
)

// Config controls a menu instance.
//
//   - MenuID scopes outside-click detection and locates the menu element.
//   - VisibleClass is toggled for the enter and exit transitions.
//   - SubmenuClass selects nested popups for hover wiring.
//   - MaxHistorySize bounds the undo and redo stacks.
//   - DebounceDelay is the latency between an edit and its snapshot.
type Config struct {
	MenuID          string
	SurfaceID       string
	SelectionMenuID string
	VisibleClass    string
	SubmenuClass    string
	MaxHistorySize  int
	DebounceDelay   time.Duration

	// ViewportDelay debounces scroll and resize before hiding.
	ViewportDelay   time.Duration
	HoverOpenDelay  time.Duration
	HoverCloseDelay time.Duration
	SubmenuHide     time.Duration

	// PointerOffsetX is how far into the first item the pointer lands.
	PointerOffsetX int
	// Margin keeps a clamped menu this far from the viewport edge.
	Margin int
}

// DefaultConfig returns a configuration populated with the documented
// defaults.
func DefaultConfig() Config {
	return Config{
		MenuID:          DefaultMenuID,
		SurfaceID:       DefaultSurfaceID,
		SelectionMenuID: DefaultSelectionMenuID,
		VisibleClass:    DefaultVisibleClass,
		SubmenuClass:    DefaultSubmenuClass,
		MaxHistorySize:  DefaultMaxHistorySize,
		DebounceDelay:   DefaultDebounceDelay,
		ViewportDelay:   DefaultViewportDelay,
		HoverOpenDelay:  DefaultHoverOpenDelay,
		HoverCloseDelay: DefaultHoverCloseDelay,
		SubmenuHide:     DefaultSubmenuHide,
		PointerOffsetX:  DefaultPointerOffsetX,
		Margin:          DefaultMargin,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig. Negative values
// are left alone so Validate can report them.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if strings.TrimSpace(c.MenuID) == "" {
		c.MenuID = d.MenuID
	}
	if strings.TrimSpace(c.SurfaceID) == "" {
		c.SurfaceID = d.SurfaceID
	}
	if strings.TrimSpace(c.SelectionMenuID) == "" {
		c.SelectionMenuID = d.SelectionMenuID
	}
	if strings.TrimSpace(c.VisibleClass) == "" {
		c.VisibleClass = d.VisibleClass
	}
	if strings.TrimSpace(c.SubmenuClass) == "" {
		c.SubmenuClass = d.SubmenuClass
	}
	if c.MaxHistorySize == 0 {
		c.MaxHistorySize = d.MaxHistorySize
	}
	if c.DebounceDelay == 0 {
		c.DebounceDelay = d.DebounceDelay
	}
	if c.ViewportDelay == 0 {
		c.ViewportDelay = d.ViewportDelay
	}
	if c.HoverOpenDelay == 0 {
		c.HoverOpenDelay = d.HoverOpenDelay
	}
	if c.HoverCloseDelay == 0 {
		c.HoverCloseDelay = d.HoverCloseDelay
	}
	if c.SubmenuHide == 0 {
		c.SubmenuHide = d.SubmenuHide
	}
	if c.PointerOffsetX == 0 {
		c.PointerOffsetX = d.PointerOffsetX
	}
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.MenuID) == "":
		return fmt.Errorf("menu id must not be empty")
	case strings.ContainsAny(c.VisibleClass, " \t") || c.VisibleClass == "":
		return fmt.Errorf("visible class must be a single non-empty class name (got %q)", c.VisibleClass)
	case strings.ContainsAny(c.SubmenuClass, " \t") || c.SubmenuClass == "":
		return fmt.Errorf("submenu class must be a single non-empty class name (got %q)", c.SubmenuClass)
	case c.MaxHistorySize < 1:
		return fmt.Errorf("max history size must be >= 1 (got %d)", c.MaxHistorySize)
	case c.DebounceDelay < 0:
		return fmt.Errorf("debounce delay must be >= 0 (got %s)", c.DebounceDelay)
	case c.ViewportDelay < 0 || c.HoverOpenDelay < 0 || c.HoverCloseDelay < 0 || c.SubmenuHide < 0:
		return fmt.Errorf("timing values must be >= 0")
	case c.PointerOffsetX < 0 || c.Margin < 0:
		return fmt.Errorf("offsets must be >= 0 (pointer %d, margin %d)", c.PointerOffsetX, c.Margin)
	}
	return nil
}
