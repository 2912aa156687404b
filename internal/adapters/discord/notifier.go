package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/PabodaWA/CricketXpert-sub001/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier delivers attendance messages as Discord DMs. The contact address
// is the recipient's Discord user ID.
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a Notifier over a fresh Discord session.
func NewNotifier(token string) (*Notifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Notifier{session: s}, nil
}

// Send opens (or reuses) the DM channel for the contact and posts the
// message. Exactly one attempt; retrying is the caller's policy, and the
// caller has none.
func (n *Notifier) Send(ctx context.Context, contact string, msg output.Message) error {
	ch, err := n.session.UserChannelCreate(contact, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	content := msg.Body
	if msg.Subject != "" {
		content = "**" + msg.Subject + "**\n" + msg.Body
	}
	if _, err := n.session.ChannelMessageSend(ch.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}
