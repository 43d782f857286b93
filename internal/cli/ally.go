package cli

import (
	"fmt"
	"strings"
)

type AllyCmd struct {
	Invite AllyInviteCmd `cmd:"" help:"Invite an ally to a habit."`
	List   AllyListCmd   `cmd:"" help:"List invited allies."`
}

type AllyInviteCmd struct {
	Habit string `arg:"" help:"Habit name."`
	Ally  string `arg:"" help:"Username of the ally to invite."`
}

func (c *AllyInviteCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	habit, ok := store.GetByName(c.Habit)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Habit)
	}

	if err := svc.Invite(habit.ID, c.Ally); err != nil {
		return err
	}

	fmt.Printf("Invited %s to %q\n", c.Ally, habit.Name)
	return nil
}

type AllyListCmd struct{}

func (c *AllyListCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}

	allies := svc.Allies()
	if len(allies) == 0 {
		fmt.Println("No allies invited yet.")
		return nil
	}

	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	for _, ally := range allies {
		var joined []string
		for _, h := range store.All() {
			for _, invited := range h.InvitedAllies {
				if invited == ally {
					joined = append(joined, h.Name)
				}
			}
		}
		fmt.Printf("%-16s %s\n", ally, strings.Join(joined, ", "))
	}
	return nil
}

type InboxCmd struct {
	List    InboxListCmd    `cmd:"" help:"List inbox notifications." default:"1"`
	Read    InboxReadCmd    `cmd:"" help:"Mark a notification as read."`
	ReadAll InboxReadAllCmd `cmd:"" help:"Mark every notification as read."`
	Accept  InboxAcceptCmd  `cmd:"" help:"Accept an ally invitation."`
	Decline InboxDeclineCmd `cmd:"" help:"Decline an ally invitation."`
	Delete  InboxDeleteCmd  `cmd:"" help:"Delete a notification."`
}

type InboxListCmd struct {
	Unread bool `help:"Show unread notifications only."`
}

func (c *InboxListCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}

	notifications, err := svc.Inbox()
	if err != nil {
		return err
	}

	shown := 0
	for _, n := range notifications {
		if c.Unread && n.IsRead {
			continue
		}
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  [%s]  %s\n", marker, n.ID[:8], n.CreatedAt.Format("2006-01-02 15:04"), n.Type, n.Title)
		if n.Message != "" {
			fmt.Printf("    %s\n", n.Message)
		}
		shown++
	}

	if shown == 0 {
		fmt.Println("Inbox is empty.")
	}
	return nil
}

type InboxReadCmd struct {
	ID string `arg:"" help:"Notification ID (prefix accepted)."`
}

func (c *InboxReadCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	id, err := resolveNotificationID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := svc.MarkRead(id); err != nil {
		return err
	}
	fmt.Println("Marked as read.")
	return nil
}

type InboxReadAllCmd struct{}

func (c *InboxReadAllCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	if err := svc.MarkAllRead(); err != nil {
		return err
	}
	fmt.Println("Marked all notifications as read.")
	return nil
}

type InboxAcceptCmd struct {
	ID string `arg:"" help:"Notification ID (prefix accepted)."`
}

func (c *InboxAcceptCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	id, err := resolveNotificationID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := svc.Accept(id); err != nil {
		return err
	}
	fmt.Println("Invitation accepted.")
	return nil
}

type InboxDeclineCmd struct {
	ID string `arg:"" help:"Notification ID (prefix accepted)."`
}

func (c *InboxDeclineCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	id, err := resolveNotificationID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := svc.Decline(id); err != nil {
		return err
	}
	fmt.Println("Invitation declined.")
	return nil
}

type InboxDeleteCmd struct {
	ID string `arg:"" help:"Notification ID (prefix accepted)."`
}

func (c *InboxDeleteCmd) Run(ctx *Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	id, err := resolveNotificationID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := svc.Delete(id); err != nil {
		return err
	}
	fmt.Println("Notification deleted.")
	return nil
}

// resolveNotificationID expands an ID prefix to the full notification ID.
// Ambiguous prefixes are an error.
func resolveNotificationID(ctx *Context, prefix string) (string, error) {
	svc, err := ctx.Allies()
	if err != nil {
		return "", err
	}
	notifications, err := svc.Inbox()
	if err != nil {
		return "", err
	}

	var match string
	for _, n := range notifications {
		if n.ID == prefix {
			return n.ID, nil
		}
		if strings.HasPrefix(n.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("notification ID %q is ambiguous", prefix)
			}
			match = n.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("notification %q not found", prefix)
	}
	return match, nil
}
