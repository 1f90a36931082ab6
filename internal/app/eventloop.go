package app

import (
	"errors"
	"fmt"

	"github.com/dshills/findbar/internal/engine/history"
	"github.com/dshills/findbar/internal/find"
	"github.com/dshills/findbar/internal/renderer/backend"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	default:
		return nil
	}
}

// handleInterrupt processes events posted from other goroutines.
func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case quitRequest:
		return ErrQuit
	case configReload:
		app.applyConfig(d.cfg)
	}
	return nil
}

// handleKeyEvent runs the global bindings, then hands the key to the
// focused widget.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyCtrlF:
		if app.bar.Focused() {
			app.bar.Blur()
			return nil
		}
		app.find.Show()
		app.layout()
		return nil
	case backend.KeyCtrlL:
		app.view.Recenter()
		return nil
	case backend.KeyCtrlS:
		app.save()
		return nil
	case backend.KeyCtrlN:
		app.find.FindNext()
		return nil
	case backend.KeyCtrlP:
		app.find.FindPrevious()
		return nil
	case backend.KeyCtrlR:
		app.replaceOne()
		return nil
	case backend.KeyCtrlA:
		app.replaceAll()
		return nil
	case backend.KeyCtrlZ:
		app.undo(app.view.Undo)
		return nil
	case backend.KeyCtrlY:
		app.undo(app.view.Redo)
		return nil
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModAlt) && app.toggleOption(ev.Rune) {
			return nil
		}
	}

	if app.bar.Focused() {
		return app.handleBarKey(ev)
	}
	return app.handleEditorKey(ev)
}

// toggleOption flips the search option bound to Alt+r.
func (app *Application) toggleOption(r rune) bool {
	s := app.find.Settings()
	switch r {
	case 'c', 'C':
		app.find.SetCaseSensitive(!s.CaseSensitive())
	case 'w', 'W':
		app.find.SetWholeWord(!s.WholeWord())
	case 'x', 'X':
		app.find.SetRegexEnabled(!s.RegexEnabled())
	default:
		return false
	}
	return true
}

// handleBarKey edits the focused find bar input.
func (app *Application) handleBarKey(ev backend.Event) error {
	in := app.bar.Input()
	inPattern := app.bar.Field() == FieldPattern
	changed := false

	switch ev.Key {
	case backend.KeyEscape:
		app.find.HandleBarKeyDown(find.KeyEscape)
		app.layout()
	case backend.KeyEnter:
		switch {
		case !inPattern:
			app.replaceOne()
		case ev.Mod.Has(backend.ModShift):
			// Terminals report Shift only with the key it modifies.
			app.find.HandlePatternKeyDown(find.KeyShiftLeft)
			app.find.HandlePatternKeyDown(find.KeyEnter)
			app.find.HandlePatternKeyUp(find.KeyShiftLeft)
		default:
			app.find.HandlePatternKeyDown(find.KeyEnter)
		}
	case backend.KeyTab, backend.KeyBacktab:
		app.bar.NextField()
	case backend.KeyLeft:
		in.Left()
	case backend.KeyRight:
		in.Right()
	case backend.KeyHome:
		in.Home()
	case backend.KeyEnd:
		in.End()
	case backend.KeyBackspace:
		changed = in.Backspace()
	case backend.KeyDelete:
		changed = in.Delete()
	case backend.KeyRune:
		in.Insert(string(ev.Rune))
		changed = true
	}

	if changed && inPattern {
		app.find.PatternChanged(in.Text())
	}
	return nil
}

// handleEditorKey moves the cursor or edits the document.
func (app *Application) handleEditorKey(ev backend.Event) error {
	v := app.view
	var err error

	switch ev.Key {
	case backend.KeyEscape:
		app.find.HandleBarKeyDown(find.KeyEscape)
		app.layout()
	case backend.KeyLeft:
		v.MoveLeft()
	case backend.KeyRight:
		v.MoveRight()
	case backend.KeyUp:
		v.MoveLines(-1)
	case backend.KeyDown:
		v.MoveLines(1)
	case backend.KeyPageUp:
		v.PageUp()
	case backend.KeyPageDown:
		v.PageDown()
	case backend.KeyHome:
		v.MoveHome()
	case backend.KeyEnd:
		v.MoveEnd()
	case backend.KeyEnter:
		err = v.InsertText("\n")
	case backend.KeyTab:
		err = v.InsertText("\t")
	case backend.KeyBackspace:
		err = v.Backspace()
	case backend.KeyDelete:
		err = v.DeleteForward()
	case backend.KeyRune:
		err = v.InsertText(string(ev.Rune))
	}

	if err != nil {
		app.log.Warn("edit: %v", err)
	}
	return nil
}

// undo runs an undo or redo step. An empty stack is not an error.
func (app *Application) undo(step func() error) {
	err := step()
	switch {
	case errors.Is(err, history.ErrNothingToUndo), errors.Is(err, history.ErrNothingToRedo):
		app.log.Debug("%v", err)
	case err != nil:
		app.log.Warn("undo: %v", err)
	}
}

func (app *Application) replaceOne() {
	app.find.ReplaceOne(app.bar.Replacement().Text())
}

func (app *Application) replaceAll() {
	n := app.find.ReplaceAll(app.bar.Replacement().Text())
	app.bar.SetStatus(fmt.Sprintf("%d replaced", n))
}

// save writes the document and reports the result on the status line.
func (app *Application) save() {
	if err := app.doc.Save(); err != nil {
		app.log.Error("%v", err)
		app.status = err.Error()
		return
	}
	app.log.Info("saved %s", app.doc.Path)
	app.status = "saved " + app.doc.Name
}

// layout resizes the editor to the rows the find bar leaves free.
func (app *Application) layout() {
	app.view.Resize(app.width, app.editorHeight())
}
