// Package ui contains the Bubble Tea program that hosts the editor and its
// context menu. The Model owns an editor.Buffer, a dom.Document describing
// what is on screen, and the menu.Controller mounted over that document.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Scheduler
//     messages (timer fires and continuations of background work) are handed
//     to the Scheduler first; everything else goes through a typed handler
//     registry so each tea.Msg is handled by a focused function.
//   - Mouse reports become pointer events on the document: motion drives
//     enter/leave tracking, a right press dispatches contextmenu, a left press
//     dispatches click and wheel turns dispatch window scroll
//     (internal/ui/mouse.go).
//   - Keys go to the document as keydown while the menu is open and edit the
//     buffer otherwise. Edits dispatch input on the editor surface so the
//     menu can record history (internal/ui/input.go).
//   - After every update finishUpdate drains posted work, re-syncs the
//     selection overlay and returns commands queued by menu actions.
//
// Rendering:
//   - The text area, status row and popups are drawn from the element tree:
//     each displayed list is rendered as a bordered box at its laid-out
//     bounds and composited over the text (internal/ui/overlay.go). Lists
//     that lack the visible class are mid-transition and drawn faded.
//   - Class changes on elements with a transition duration schedule a
//     transitionend after that duration, which the menu waits on before
//     taking itself out of layout.
//
// Backend interactions:
//   - A backend.Watcher streams external writes to the open file; Update
//     waits for those events and reloads the buffer when it has no unsaved
//     edits, recording the new contents as a history snapshot.
//   - Side effects that may block (opening URLs, saving) run as tea.Cmd
//     values through the internal/ui/command bus.
package ui
