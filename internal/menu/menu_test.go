package menu

import (
	"testing"

	"github.com/atomicstack/editmenu/internal/dom"
)

func TestBuildRegistryNestsChildrenInOrder(t *testing.T) {
	reg := BuildRegistry(DefaultItems())
	translate, ok := reg.Find(ActionTranslate)
	if !ok {
		t.Fatalf("translate missing from registry")
	}
	if len(translate.Children) != len(TranslateTargets()) {
		t.Fatalf("expected %d languages, got %d", len(TranslateTargets()), len(translate.Children))
	}
	if translate.Children[0].ID != "translate:en" {
		t.Fatalf("expected English first, got %s", translate.Children[0].ID)
	}
	if node, ok := reg.Child(ActionTranslate, "ja"); !ok || node.Item.Label != "Japanese" {
		t.Fatalf("Child lookup failed: %#v", node)
	}
	if got := reg.Root().Children[0].ID; got != ActionCut {
		t.Fatalf("expected cut first, got %s", got)
	}
}

func TestBuildRegistryOrphansHangOffRoot(t *testing.T) {
	reg := BuildRegistry([]Item{{ID: "x:y", Label: "Orphan"}, {ID: "x:y", Label: "Dup"}, {ID: ""}})
	if len(reg.Root().Children) != 1 {
		t.Fatalf("expected one root child, got %d", len(reg.Root().Children))
	}
	if reg.Root().Children[0].Item.Label != "Orphan" {
		t.Fatalf("duplicate replaced the first definition")
	}
}

func TestBuildMarkup(t *testing.T) {
	doc := dom.New(80, 24)
	cfg := DefaultConfig()
	root := Build(doc, doc.Body(), BuildRegistry(DefaultItems()), cfg)

	if root.ID() != cfg.MenuID || root.Displayed() {
		t.Fatalf("expected hidden root with id %q", cfg.MenuID)
	}
	items := CacheItems(root)
	for _, action := range []string{ActionCut, ActionCopy, ActionPaste, ActionUndo, ActionRedo, ActionSelectAll, ActionSearchWithGoogle, ActionTranslate, "translate:fr"} {
		if _, ok := items.Get(action); !ok {
			t.Fatalf("expected %s cached", action)
		}
	}
	translate, _ := items.Get(ActionTranslate)
	if !translate.HasClass(ClassHasSubmenu) {
		t.Fatalf("expected submenu trigger class")
	}
	if v, _ := translate.Attr(AttrAriaExpanded); v != "false" {
		t.Fatalf("expected aria-expanded=false, got %q", v)
	}
	sub := translate.ChildWithClass(cfg.SubmenuClass)
	if sub == nil || sub.Displayed() {
		t.Fatalf("expected hidden submenu under translate")
	}
	seps := root.QueryAll(func(e *dom.Element) bool { return e.HasClass(ClassSeparator) })
	if len(seps) != 3 {
		t.Fatalf("expected 3 separators, got %d", len(seps))
	}
	if el := doc.GetElementByID(cfg.MenuID + "-translate-de"); el == nil {
		t.Fatalf("expected colon ids mapped to element ids")
	}
}

func TestItemCacheTreatsDetachedAsMissing(t *testing.T) {
	doc := dom.New(80, 24)
	root := Build(doc, doc.Body(), BuildRegistry(DefaultItems()), DefaultConfig())
	items := CacheItems(root)
	cut, _ := items.Get(ActionCut)
	cut.Remove()
	if _, ok := items.Get(ActionCut); ok {
		t.Fatalf("detached item should read as absent")
	}
	if _, ok := items.Get("nope"); ok {
		t.Fatalf("unknown action should read as absent")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero fields filled", mutate: func(c *Config) { *c = Config{} }},
		{name: "negative history", mutate: func(c *Config) { c.MaxHistorySize = -2 }, wantErr: true},
		{name: "class with space", mutate: func(c *Config) { c.VisibleClass = "a b" }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.DebounceDelay = -1 }, wantErr: true},
		{name: "negative margin", mutate: func(c *Config) { c.Margin = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.WithDefaults().Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
