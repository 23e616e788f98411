package menu

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging/events"
)

// typeAheadReset is how long typed characters accumulate into one query.
const typeAheadReset = 750 * time.Millisecond

func (c *Controller) onKeyDown(ev *dom.Event) {
	if c.state.IsDestroyed() || !c.state.IsVisible() {
		return
	}
	switch ev.Key {
	case dom.KeyEscape:
		ev.PreventDefault()
		c.hide(events.HideReasonEscape)
	case dom.KeyArrowDown:
		ev.PreventDefault()
		c.moveFocus(1)
	case dom.KeyArrowUp:
		ev.PreventDefault()
		c.moveFocus(-1)
	case dom.KeyArrowRight:
		ev.PreventDefault()
		c.enterSubmenu()
	case dom.KeyArrowLeft:
		ev.PreventDefault()
		c.leaveSubmenu()
	case dom.KeyEnter:
		if c.focused == nil || !isActionable(c.focused) {
			return
		}
		ev.PreventDefault()
		if c.focused.HasClass(ClassHasSubmenu) {
			c.enterSubmenu()
			return
		}
		_, action := actionOf(c.focused)
		c.activate(action)
	default:
		r, size := utf8.DecodeRuneInString(ev.Key)
		if size == len(ev.Key) && r != utf8.RuneError && unicode.IsPrint(r) {
			ev.PreventDefault()
			c.typeAhead(ev.Key)
		}
	}
}

// scope is the list keyboard focus moves within: the focused row's list, or
// the top-level menu.
func (c *Controller) scope() *dom.Element {
	if c.focused != nil && c.focused.Parent() != nil && c.focused.Parent().IsRendered() {
		return c.focused.Parent()
	}
	return c.menu
}

func rows(list *dom.Element) []*dom.Element {
	var out []*dom.Element
	for _, child := range list.Children() {
		if isActionable(child) && child.Displayed() {
			out = append(out, child)
		}
	}
	return out
}

func (c *Controller) moveFocus(delta int) {
	candidates := rows(c.scope())
	if len(candidates) == 0 {
		return
	}
	idx := -1
	for i, row := range candidates {
		if row == c.focused {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(candidates) - 1
	default:
		idx = (idx + delta + len(candidates)) % len(candidates)
	}
	c.setFocus(candidates[idx])
}

func (c *Controller) setFocus(row *dom.Element) {
	if c.focused == row {
		return
	}
	if c.focused != nil {
		c.focused.RemoveClass(ClassFocused)
	}
	c.focused = row
	if row == nil {
		return
	}
	row.AddClass(ClassFocused)
	_, action := actionOf(row)
	events.Menu.Focus(action)
}

func (c *Controller) enterSubmenu() {
	if c.focused == nil || !c.focused.HasClass(ClassHasSubmenu) {
		return
	}
	if !c.hover.OpenNow(c.focused) {
		return
	}
	sub := c.focused.ChildWithClass(c.cfg.SubmenuClass)
	if sub == nil {
		return
	}
	if first := firstActionable(sub); first != nil {
		c.setFocus(first)
	}
}

func (c *Controller) leaveSubmenu() {
	list := c.scope()
	if list == c.menu || !list.HasClass(c.cfg.SubmenuClass) {
		return
	}
	trigger := list.Parent()
	c.hover.Close(trigger)
	c.setFocus(trigger)
}

// typeAhead moves focus to the row best matching the characters typed so
// far. Prefix matches win; otherwise the closest fuzzy match is taken.
func (c *Controller) typeAhead(key string) {
	c.query += key
	c.typeReset.Trigger()
	candidates := rows(c.scope())
	if len(candidates) == 0 {
		return
	}
	if idx := bestLabelMatch(c.query, candidates); idx >= 0 {
		c.setFocus(candidates[idx])
	}
}

func bestLabelMatch(query string, candidates []*dom.Element) int {
	labels := make([]string, len(candidates))
	for i, row := range candidates {
		labels[i] = row.Text()
	}
	lower := strings.ToLower(query)
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
	}
	folded := make([]string, len(labels))
	for i, label := range labels {
		folded[i] = strings.ToLower(label)
	}
	// Distances are computed on the strings as given, so fold first.
	ranks := fuzzy.RankFindNormalized(lower, folded)
	if len(ranks) == 0 {
		return -1
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return len(ranks[i].Target) < len(ranks[j].Target)
	})
	return ranks[0].OriginalIndex
}
