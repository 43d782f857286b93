// Package allies implements the social layer: inviting allies to a habit and
// the notification inbox those invitations flow through. Ally operations
// never touch completion history.
package allies

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/butterslam/vibe-1/internal/habits"
	"github.com/butterslam/vibe-1/internal/models"
	"github.com/butterslam/vibe-1/internal/storage"
)

type Service struct {
	provider storage.Provider
	habits   *habits.Store
	ownerID  string
}

func New(provider storage.Provider, habitStore *habits.Store, ownerID string) *Service {
	return &Service{
		provider: provider,
		habits:   habitStore,
		ownerID:  ownerID,
	}
}

// Invite records an ally on the habit and writes an invitation to the inbox.
func (s *Service) Invite(habitID, allyUsername string) error {
	habit, ok := s.habits.Get(habitID)
	if !ok {
		return fmt.Errorf("habit %q not found", habitID)
	}
	if slices.Contains(habit.InvitedAllies, allyUsername) {
		return fmt.Errorf("%q is already invited to %q", allyUsername, habit.Name)
	}

	_, _, err := s.habits.Update(habitID, habits.Edit{
		Name:            habit.Name,
		ScheduledDays:   habit.ScheduledDays,
		TimeOfDay:       habit.TimeOfDay,
		CommitmentLevel: habit.CommitmentLevel,
		ColorIndex:      habit.ColorIndex,
		Description:     habit.Description,
		InvitedAllies:   append(slices.Clone(habit.InvitedAllies), allyUsername),
		ReminderEnabled: habit.ReminderEnabled,
	})
	if err != nil {
		return err
	}

	invitation := models.Notification{
		ID:           uuid.New().String(),
		OwnerID:      s.ownerID,
		Type:         models.NotificationAllyInvitation,
		Title:        "Habit Invitation",
		Message:      fmt.Sprintf("%s invited you to partake in %q", s.ownerID, habit.Name),
		CreatedAt:    time.Now(),
		HabitID:      habit.ID,
		FromUserID:   s.ownerID,
		FromUsername: s.ownerID,
	}
	return s.provider.SaveNotification(invitation)
}

// Allies returns the distinct allies invited across all habits.
func (s *Service) Allies() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, h := range s.habits.All() {
		for _, ally := range h.InvitedAllies {
			if _, ok := seen[ally]; ok {
				continue
			}
			seen[ally] = struct{}{}
			out = append(out, ally)
		}
	}
	slices.Sort(out)
	return out
}

// Inbox returns the owner's notifications, newest first.
func (s *Service) Inbox() ([]models.Notification, error) {
	return s.provider.GetNotifications(s.ownerID)
}

// UnreadCount returns how many inbox entries are unread.
func (s *Service) UnreadCount() (int, error) {
	notifications, err := s.Inbox()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead marks one notification as read.
func (s *Service) MarkRead(id string) error {
	n, err := s.provider.GetNotification(id)
	if err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	return s.provider.SaveNotification(n)
}

// MarkAllRead marks every inbox entry as read.
func (s *Service) MarkAllRead() error {
	notifications, err := s.Inbox()
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		if err := s.provider.SaveNotification(n); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a notification from the inbox.
func (s *Service) Delete(id string) error {
	return s.provider.DeleteNotification(id)
}

// Accept accepts an ally invitation: the inviter becomes an ally on the
// related habit and the invitation is marked read.
func (s *Service) Accept(notificationID string) error {
	n, err := s.provider.GetNotification(notificationID)
	if err != nil {
		return err
	}
	if n.Type != models.NotificationAllyInvitation {
		return fmt.Errorf("notification %q is not an invitation", notificationID)
	}

	if habit, ok := s.habits.Get(n.HabitID); ok && n.FromUsername != "" &&
		!slices.Contains(habit.InvitedAllies, n.FromUsername) {
		if _, _, err := s.habits.Update(habit.ID, habits.Edit{
			Name:            habit.Name,
			ScheduledDays:   habit.ScheduledDays,
			TimeOfDay:       habit.TimeOfDay,
			CommitmentLevel: habit.CommitmentLevel,
			ColorIndex:      habit.ColorIndex,
			Description:     habit.Description,
			InvitedAllies:   append(slices.Clone(habit.InvitedAllies), n.FromUsername),
			ReminderEnabled: habit.ReminderEnabled,
		}); err != nil {
			return err
		}
	}

	n.IsRead = true
	return s.provider.SaveNotification(n)
}

// Decline removes an invitation without recording an ally.
func (s *Service) Decline(notificationID string) error {
	n, err := s.provider.GetNotification(notificationID)
	if err != nil {
		return err
	}
	if n.Type != models.NotificationAllyInvitation {
		return fmt.Errorf("notification %q is not an invitation", notificationID)
	}
	return s.provider.DeleteNotification(n.ID)
}
