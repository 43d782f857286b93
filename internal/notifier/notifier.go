// Package notifier delivers desktop reminders through the companion tray
// application and exposes the scheduler hooks the habit store fires on
// mutation. Hooks are advisory: delivery failure never affects habit state.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/dates"
	"github.com/butterslam/vibe-1/internal/logger"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/schedule"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Scheduler receives habit lifecycle events so reminders can be kept in sync
// with the schedule. Implementations must tolerate habits that fail to
// resolve a next occurrence.
type Scheduler interface {
	HabitAdded(models.Habit)
	HabitUpdated(models.Habit)
	HabitRemoved(models.Habit)
}

// Noop is a Scheduler that does nothing. Used in tests and when reminder
// delivery is disabled.
type Noop struct{}

func (Noop) HabitAdded(models.Habit)   {}
func (Noop) HabitUpdated(models.Habit) {}
func (Noop) HabitRemoved(models.Habit) {}

// Notifier sends reminder text to the tray process and implements Scheduler
// by announcing schedule changes.
type Notifier struct {
	timezone string
}

func New(timezone string) *Notifier {
	return &Notifier{timezone: timezone}
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func (n *Notifier) HabitAdded(h models.Habit) {
	if !h.ReminderEnabled {
		return
	}
	n.announce(h, "Reminder set for %q, next occurrence %s")
}

func (n *Notifier) HabitUpdated(h models.Habit) {
	if !h.ReminderEnabled {
		return
	}
	n.announce(h, "Reminder updated for %q, next occurrence %s")
}

func (n *Notifier) HabitRemoved(h models.Habit) {
	if err := n.Notify(fmt.Sprintf("Reminders cleared for %q", h.Name)); err != nil {
		logger.Debug("Reminder clear notification not delivered", "habit", h.Name, "error", err)
	}
}

func (n *Notifier) announce(h models.Habit, format string) {
	now, err := dates.NowInTimezone(n.timezone)
	if err != nil {
		logger.Warn("Invalid timezone for reminder", "timezone", n.timezone, "error", err)
		return
	}
	next, ok := schedule.NextDue(h, now)
	if !ok {
		return
	}
	msg := fmt.Sprintf(format, h.Name, next.Format("Monday 15:04"))
	if err := n.Notify(msg); err != nil {
		logger.Debug("Reminder notification not delivered", "habit", h.Name, "error", err)
	}
}

// Notify posts text to the tray application's local webhook.
func (n *Notifier) Notify(text string) error {
	trayAppConfigPath, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayAppConfigPath, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	return sendNotification(port, secret, payload)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("vibe-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("vibe-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), "vibe-tray") {
		return "", "", fmt.Errorf("process with PID %d is not vibe-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Vibe-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
