// Package platform holds the small pieces of OS-specific glue the app
// needs: a single-instance lock and login-item registration.
package platform

import (
	"fmt"
	"strings"
)

// EnableAutostart registers the executable to start at login.
func EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	return enableAutostart(appName, execPath)
}

// DisableAutostart removes the login-item registration.
func DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}
	return disableAutostart(appName)
}

func slugFromName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "pomotick"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
