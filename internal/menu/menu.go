package menu

import (
	"strings"

	"github.com/atomicstack/editmenu/internal/dom"
)

// Logical action names. Translate targets are children of ActionTranslate,
// e.g. "translate:es".
const (
	ActionCut              = "cut"
	ActionCopy             = "copy"
	ActionPaste            = "paste"
	ActionUndo             = "undo"
	ActionRedo             = "redo"
	ActionSelectAll        = "selectAll"
	ActionSearchWithGoogle = "searchWithGoogle"
	ActionTranslate        = "translate"
)

// Item represents a context menu entry definition.
type Item struct {
	ID        string
	Label     string
	Shortcut  string
	Separator bool
}

// Action returns the logical action dispatched when the item is chosen.
func (i Item) Action() string {
	return i.ID
}

// DefaultItems returns the editor context menu in display order. Child
// entries follow their parent and use colon-separated ids.
func DefaultItems() []Item {
	items := []Item{
		{ID: ActionCut, Label: "Cut", Shortcut: "ctrl+x"},
		{ID: ActionCopy, Label: "Copy", Shortcut: "ctrl+c"},
		{ID: ActionPaste, Label: "Paste", Shortcut: "ctrl+v"},
		{ID: "sep-edit", Separator: true},
		{ID: ActionUndo, Label: "Undo", Shortcut: "ctrl+z"},
		{ID: ActionRedo, Label: "Redo", Shortcut: "ctrl+y"},
		{ID: "sep-history", Separator: true},
		{ID: ActionSelectAll, Label: "Select All", Shortcut: "ctrl+a"},
		{ID: "sep-lookup", Separator: true},
		{ID: ActionSearchWithGoogle, Label: "Search with Google"},
		{ID: ActionTranslate, Label: "Translate"},
	}
	for _, lang := range TranslateTargets() {
		items = append(items, Item{ID: ActionTranslate + ":" + lang.Code, Label: lang.Name})
	}
	return items
}

// Language is a translation target.
type Language struct {
	Code string
	Name string
}

// TranslateTargets lists the languages offered under Translate.
func TranslateTargets() []Language {
	return []Language{
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "de", Name: "German"},
		{Code: "ja", Name: "Japanese"},
	}
}

// ItemCache maps logical action names to their elements. A missing key means
// the item is not present, which callers treat as disabled.
type ItemCache map[string]*dom.Element

// Get returns the element for action if present and attached.
func (c ItemCache) Get(action string) (*dom.Element, bool) {
	el, ok := c[action]
	if !ok || !IsValidElement(el) {
		return nil, false
	}
	return el, true
}

// CacheItems indexes every element under root carrying a data-action.
func CacheItems(root *dom.Element) ItemCache {
	cache := ItemCache{}
	if root == nil {
		return cache
	}
	for _, el := range root.QueryAll(func(e *dom.Element) bool {
		_, ok := e.Attr(AttrAction)
		return ok
	}) {
		action, _ := el.Attr(AttrAction)
		if _, dup := cache[action]; !dup {
			cache[action] = el
		}
	}
	return cache
}

// Build materialises the registry as menu markup: a hidden container with id
// cfg.MenuID holding item rows, separators, and for parents a nested popup
// carrying cfg.SubmenuClass. The container is appended to parent.
func Build(doc *dom.Document, parent *dom.Element, reg *Registry, cfg Config) *dom.Element {
	root := doc.CreateElement("ul", cfg.MenuID)
	root.AddClass("context-menu")
	root.SetAttr("role", "menu")
	root.SetDisplay(false)
	buildChildren(doc, root, reg.Root(), cfg)
	if parent != nil {
		parent.AppendChild(root)
	}
	return root
}

func buildChildren(doc *dom.Document, container *dom.Element, node *Node, cfg Config) {
	for _, child := range node.Children {
		if child.Item.Separator {
			sep := doc.CreateElement("li", elementID(cfg, child.ID))
			sep.AddClass(ClassSeparator)
			sep.SetAttr("role", "separator")
			container.AppendChild(sep)
			continue
		}
		row := doc.CreateElement("li", elementID(cfg, child.ID))
		row.AddClass(ClassItem)
		row.SetAttr("role", "menuitem")
		row.SetAttr(AttrAction, child.Item.Action())
		row.SetText(child.Item.Label)
		if child.Item.Shortcut != "" {
			row.SetAttr("data-shortcut", child.Item.Shortcut)
		}
		container.AppendChild(row)
		if len(child.Children) == 0 {
			continue
		}
		row.AddClass(ClassHasSubmenu)
		row.SetAttr("aria-haspopup", "true")
		row.SetAttr(AttrAriaExpanded, "false")
		sub := doc.CreateElement("ul", elementID(cfg, child.ID)+"-submenu")
		sub.AddClass(cfg.SubmenuClass)
		sub.SetAttr("role", "menu")
		sub.SetDisplay(false)
		row.AppendChild(sub)
		buildChildren(doc, sub, child, cfg)
	}
}

func elementID(cfg Config, id string) string {
	return cfg.MenuID + "-" + strings.ReplaceAll(id, ":", "-")
}

// isActionable reports whether el is an enabled, clickable row.
func isActionable(el *dom.Element) bool {
	return el != nil && el.HasClass(ClassItem) && !el.HasClass(ClassDisabled)
}

// actionOf returns the data-action of the closest item row around el.
func actionOf(el *dom.Element) (*dom.Element, string) {
	if el == nil {
		return nil, ""
	}
	row := el.Closest(func(n *dom.Element) bool { return n.HasClass(ClassItem) })
	if row == nil {
		return nil, ""
	}
	action, _ := row.Attr(AttrAction)
	return row, action
}
