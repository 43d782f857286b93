package settings

import (
	"fmt"

	"github.com/butterslam/vibe-1/internal/cli"
	"github.com/butterslam/vibe-1/internal/dates"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Owner                *string `help:"Username shown on ally invitations."`
	Timezone             *string `help:"IANA timezone for day boundaries (e.g. America/New_York, or 'Local')."`
	NotificationsEnabled *bool   `help:"Enable or disable notifications."`
	DefaultReminder      *bool   `help:"Default reminder setting for new habits."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Owner:                 %s\n", settings.OwnerID)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Default Reminder:      %v\n", settings.DefaultReminder)
		return nil
	}

	updated := false
	if c.Owner != nil {
		settings.OwnerID = *c.Owner
		updated = true
	}
	if c.Timezone != nil {
		if !dates.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.DefaultReminder != nil {
		settings.DefaultReminder = *c.DefaultReminder
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
