package mainwindow

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomotick/internal/core/countdown"
	"pomotick/internal/core/model"
)

// Intents forwards user actions to the state machine. The window never
// mutates session state itself.
type Intents struct {
	OnStart         func()
	OnTogglePause   func()
	OnReset         func()
	OnResetDefaults func()
	OnFocusMinutes  func(int)
	OnBreakMinutes  func(int)
}

// Window is the countdown window.
type Window struct {
	window       fyne.Window
	timerLabel   *canvas.Text
	modeLabel    *widget.Label
	messageLabel *widget.Label
	startButton  *widget.Button
	pauseButton  *widget.Button
	focusEntry   *widget.Entry
	breakEntry   *widget.Entry
}

var (
	focusColor = color.NRGBA{R: 217, G: 79, B: 55, A: 255}
	breakColor = color.NRGBA{R: 74, G: 124, B: 58, A: 255}
)

// New creates the timer window showing the given session. Closing the
// window hides it; the app lives on in the tray.
func New(app fyne.App, session model.Session, intents Intents) *Window {
	window := app.NewWindow("Pomotick")

	timerLabel := canvas.NewText(model.FormatClock(session.TimeLeft), focusColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 64

	modeLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	messageLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	startButton := widget.NewButton("Start", func() {
		if intents.OnStart != nil {
			intents.OnStart()
		}
	})
	pauseButton := widget.NewButton("Pause", func() {
		if intents.OnTogglePause != nil {
			intents.OnTogglePause()
		}
	})
	resetButton := widget.NewButton("Reset", func() {
		if intents.OnReset != nil {
			intents.OnReset()
		}
	})
	defaultsButton := widget.NewButton("Defaults", func() {
		if intents.OnResetDefaults != nil {
			intents.OnResetDefaults()
		}
	})

	focusEntry := widget.NewEntry()
	breakEntry := widget.NewEntry()
	focusEntry.SetText(fmt.Sprintf("%d", session.FocusDuration))
	breakEntry.SetText(fmt.Sprintf("%d", session.BreakDuration))

	focusEntry.OnSubmitted = func(text string) {
		minutes := model.ParseMinutes(text)
		focusEntry.SetText(fmt.Sprintf("%d", minutes))
		if intents.OnFocusMinutes != nil {
			intents.OnFocusMinutes(minutes)
		}
	}
	breakEntry.OnSubmitted = func(text string) {
		minutes := model.ParseMinutes(text)
		breakEntry.SetText(fmt.Sprintf("%d", minutes))
		if intents.OnBreakMinutes != nil {
			intents.OnBreakMinutes(minutes)
		}
	}

	durations := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), focusEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), breakEntry, widget.NewLabel("min")),
	)

	buttons := container.NewHBox(
		layout.NewSpacer(),
		startButton,
		pauseButton,
		resetButton,
		defaultsButton,
		layout.NewSpacer(),
	)

	content := container.NewVBox(
		modeLabel,
		container.NewPadded(timerLabel),
		messageLabel,
		buttons,
		widget.NewSeparator(),
		durations,
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(340, 400))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	timer := &Window{
		window:       window,
		timerLabel:   timerLabel,
		modeLabel:    modeLabel,
		messageLabel: messageLabel,
		startButton:  startButton,
		pauseButton:  pauseButton,
		focusEntry:   focusEntry,
		breakEntry:   breakEntry,
	}
	timer.applySession(session)
	return timer
}

// Show displays the timer window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// ApplyEvent updates the display from a state machine event. Callers must
// be on the Fyne event loop.
func (timer *Window) ApplyEvent(event countdown.Event) {
	timer.timerLabel.Text = event.Display
	timer.setMode(event.Mode, event.Status)
	timer.messageLabel.SetText(event.Message)
	timer.setButtons(event.Status)

	if event.Type == countdown.EventStateChange {
		timer.focusEntry.SetText(fmt.Sprintf("%d", event.FocusMinutes))
		timer.breakEntry.SetText(fmt.Sprintf("%d", event.BreakMinutes))
	}
	timer.timerLabel.Refresh()
}

func (timer *Window) applySession(session model.Session) {
	timer.timerLabel.Text = model.FormatClock(session.TimeLeft)
	timer.setMode(session.Mode, session.Status)
	timer.messageLabel.SetText(session.CompletionMessage)
	timer.setButtons(session.Status)
	timer.timerLabel.Refresh()
}

func (timer *Window) setMode(mode model.Mode, status model.Status) {
	label := "Focus"
	timer.timerLabel.Color = focusColor
	if mode == model.ModeBreak {
		label = "Break"
		timer.timerLabel.Color = breakColor
	}
	switch status {
	case model.StatusRunning:
		label += " (running)"
	case model.StatusPaused:
		label += " (paused)"
	}
	timer.modeLabel.SetText(label)
}

func (timer *Window) setButtons(status model.Status) {
	switch status {
	case model.StatusIdle:
		timer.startButton.Enable()
		timer.pauseButton.Disable()
		timer.pauseButton.SetText("Pause")
	case model.StatusRunning:
		timer.startButton.Disable()
		timer.pauseButton.Enable()
		timer.pauseButton.SetText("Pause")
	case model.StatusPaused:
		timer.startButton.Disable()
		timer.pauseButton.Enable()
		timer.pauseButton.SetText("Resume")
	}
}
