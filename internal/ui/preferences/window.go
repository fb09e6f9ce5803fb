package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	sound         *widget.Check
	notifications *widget.Check
	autostart     *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomotick Settings")

	sound := widget.NewCheck("Play a tone when an interval ends", nil)
	sound.SetChecked(settings.SoundEnabled)

	notifications := widget.NewCheck("Show desktop notifications", nil)
	notifications.SetChecked(settings.NotificationsEnabled)

	autostart := widget.NewCheck("Start Pomotick at login", nil)
	autostart.SetChecked(settings.StartAtLogin)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sound,
		notifications,
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 240))

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		sound:         sound,
		notifications: notifications,
		autostart:     autostart,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.autostart.SetChecked(settings.StartAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.SoundEnabled = prefs.sound.Checked
	settings.NotificationsEnabled = prefs.notifications.Checked
	settings.StartAtLogin = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
