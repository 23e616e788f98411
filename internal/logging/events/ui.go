package events

import "github.com/atomicstack/editmenu/internal/logging"

type MenuTracer struct{}

type HistoryTracer struct{}

type HoverTracer struct{}

type EditorTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type HideReason string

const (
	HideReasonAPI     HideReason = "api"
	HideReasonEscape  HideReason = "escape"
	HideReasonOutside HideReason = "outside"
	HideReasonScroll  HideReason = "scroll"
	HideReasonResize  HideReason = "resize"
	HideReasonAction  HideReason = "action"
	HideReasonDestroy HideReason = "destroy"
)

var (
	Menu    = MenuTracer{}
	History = HistoryTracer{}
	Hover   = HoverTracer{}
	Editor  = EditorTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (MenuTracer) Mount(menuID string, items int) {
	logging.Trace("menu.mount", map[string]interface{}{"menu": menuID, "items": items})
}

func (MenuTracer) Show(x, y, left, top int) {
	logging.Trace("menu.show", map[string]interface{}{"x": x, "y": y, "left": left, "top": top})
}

func (MenuTracer) Hide(reason HideReason) {
	logging.Trace("menu.hide", map[string]interface{}{"reason": string(reason)})
}

func (MenuTracer) Hidden() {
	logging.Trace("menu.hidden", nil)
}

func (MenuTracer) Destroy() {
	logging.Trace("menu.destroy", nil)
}

func (MenuTracer) ItemState(action string, enabled bool) {
	logging.Trace("menu.item", map[string]interface{}{"action": action, "enabled": enabled})
}

func (MenuTracer) Focus(action string) {
	logging.Trace("menu.focus", map[string]interface{}{"action": action})
}

func (MenuTracer) ClipboardFallback(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("menu.clipboard.fallback", payload)
}

func (HistoryTracer) Record(undo, redo int) {
	logging.Trace("history.record", map[string]interface{}{"undo": undo, "redo": redo})
}

func (HistoryTracer) Suppressed() {
	logging.Trace("history.record.suppressed", nil)
}

func (HistoryTracer) Undo(undo, redo int) {
	logging.Trace("history.undo", map[string]interface{}{"undo": undo, "redo": redo})
}

func (HistoryTracer) Redo(undo, redo int) {
	logging.Trace("history.redo", map[string]interface{}{"undo": undo, "redo": redo})
}

func (HoverTracer) Open(trigger string) {
	logging.Trace("hover.open", map[string]interface{}{"trigger": trigger})
}

func (HoverTracer) Close(trigger string) {
	logging.Trace("hover.close", map[string]interface{}{"trigger": trigger})
}

func (HoverTracer) Abort(trigger string) {
	logging.Trace("hover.close.abort", map[string]interface{}{"trigger": trigger})
}

func (EditorTracer) Load(path string, bytes int) {
	logging.Trace("editor.load", map[string]interface{}{"path": path, "bytes": bytes})
}

func (EditorTracer) Save(path string, bytes int) {
	logging.Trace("editor.save", map[string]interface{}{"path": path, "bytes": bytes})
}

func (EditorTracer) Reload(path string) {
	logging.Trace("editor.reload", map[string]interface{}{"path": path})
}

func (ActionTracer) Dispatch(action string) {
	logging.Trace("action.dispatch", map[string]interface{}{"action": action})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
