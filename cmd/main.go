package main

import (
	"log"
	"os"
	"time"

	"pomotick/internal/audio"
	"pomotick/internal/core/countdown"
	"pomotick/internal/core/model"
	"pomotick/internal/platform"
	"pomotick/internal/storage"
	"pomotick/internal/ui/mainwindow"
	"pomotick/internal/ui/preferences"
	"pomotick/internal/ui/tray"
	"pomotick/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomotick"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	dataDir, err := storage.DefaultDir(appName)
	if err != nil {
		log.Printf("resolve data dir: %v", err)
		return
	}

	settings, err := storage.LoadSettings(dataDir)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	sessionStore := storage.NewSessionStore(dataDir)
	historyStore := storage.NewHistoryStore(dataDir)
	cue := audio.NewCue(settings.SoundEnabled)
	notifier := audio.NewNotifier(settings.NotificationsEnabled)

	session, _ := sessionStore.Load()
	engine := countdown.New(session, countdown.Config{
		TickInterval: time.Second,
		Store:        sessionStore,
		Cue:          cue,
		History:      historyStore,
	})

	fyneApp := app.NewWithID("com.pomotick.app")
	fyneApp.SetIcon(resources.MustIcon("logo.svg"))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	timerWindow := mainwindow.New(fyneApp, engine.Session(), mainwindow.Intents{
		OnStart:         engine.Start,
		OnTogglePause:   engine.TogglePause,
		OnReset:         engine.Reset,
		OnResetDefaults: engine.ResetToDefaults,
		OnFocusMinutes:  engine.SetFocusMinutes,
		OnBreakMinutes:  engine.SetBreakMinutes,
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		cue.SetEnabled(updated.SoundEnabled)
		notifier.SetEnabled(updated.NotificationsEnabled)
		if updated.StartAtLogin != settings.StartAtLogin {
			applyAutostart(updated.StartAtLogin)
		}
		settings = updated
		if err := storage.SaveSettings(dataDir, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	activeIcon := resources.MustIcon("active.svg")
	pausedIcon := resources.MustIcon("paused.svg")

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowTimer: func() {
			timerWindow.Show()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnTogglePause: engine.TogglePause,
		OnReset:       engine.Reset,
		OnQuit: func() {
			engine.Close()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(activeIcon)
	trayManager.SetTodayCount(historyStore.CompletedToday(model.ModeFocus, time.Now()))

	events := engine.Subscribe(8)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				timerWindow.ApplyEvent(event)
				updateTray(trayManager, desktopApp, activeIcon, pausedIcon, event)
				if event.Type == countdown.EventCompleted {
					trayManager.SetTodayCount(historyStore.CompletedToday(model.ModeFocus, time.Now()))
				}
			})
			if event.Type == countdown.EventCompleted {
				notifier.Notify(appName, event.Message)
			}
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
}

func updateTray(trayManager *tray.Manager, desktopApp desktop.App, activeIcon, pausedIcon fyne.Resource, event countdown.Event) {
	switch event.Status {
	case model.StatusRunning:
		trayManager.SetPaused(false)
		trayManager.SetStatus(string(event.Mode) + " " + event.Display)
		desktopApp.SetSystemTrayIcon(activeIcon)
	case model.StatusPaused:
		trayManager.SetPaused(true)
		trayManager.SetStatus(string(event.Mode) + " " + event.Display)
		desktopApp.SetSystemTrayIcon(pausedIcon)
	default:
		trayManager.SetPaused(false)
		trayManager.SetStatus("idle")
		desktopApp.SetSystemTrayIcon(activeIcon)
	}
}

func applyAutostart(enabled bool) {
	if !enabled {
		if err := platform.DisableAutostart(appName); err != nil {
			log.Printf("disable autostart: %v", err)
		}
		return
	}

	execPath, err := os.Executable()
	if err != nil {
		log.Printf("enable autostart: resolve executable: %v", err)
		return
	}
	if err := platform.EnableAutostart(appName, execPath); err != nil {
		log.Printf("enable autostart: %v", err)
	}
}
