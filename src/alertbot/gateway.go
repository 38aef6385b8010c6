package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/civiguard/civiguard/src/api/notify"
)

// DiscordGateway is the native notification surface of the platform: one
// pinned-style alert channel where every critical case shows up. Alerts
// sharing a tag edit the same Discord message instead of stacking, the way
// browser notifications replace by tag.
type DiscordGateway struct {
	session   *discordgo.Session
	channelID string

	mu         sync.Mutex
	permission notify.Permission
	tagged     map[string]string // tag -> message ID
}

func NewDiscordGateway(session *discordgo.Session, channelID string) *DiscordGateway {
	return &DiscordGateway{
		session:   session,
		channelID: channelID,
		tagged:    make(map[string]string),
	}
}

func (g *DiscordGateway) Permission() notify.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.permission
}

// Request resolves the alert channel. An unset or unreachable channel is a
// denial, not an error: the bot keeps running without the native surface.
func (g *DiscordGateway) Request(ctx context.Context) (notify.Permission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.channelID == "" {
		g.permission = notify.PermissionDenied
		return g.permission, nil
	}
	if _, err := g.session.Channel(g.channelID); err != nil {
		g.permission = notify.PermissionDenied
		return g.permission, nil
	}
	g.permission = notify.PermissionGranted
	return g.permission, nil
}

func (g *DiscordGateway) Send(ctx context.Context, a notify.Alert) error {
	g.mu.Lock()
	msgID, seen := g.tagged[a.Tag]
	g.mu.Unlock()

	content := fmt.Sprintf("🚨 **%s**\n%s", a.Title, a.Body)

	if seen {
		_, err := g.session.ChannelMessageEdit(g.channelID, msgID, content)
		return err
	}

	msg, err := g.session.ChannelMessageSend(g.channelID, content)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.tagged[a.Tag] = msg.ID
	g.mu.Unlock()

	if a.Sticky {
		if err := g.session.ChannelMessagePin(g.channelID, msg.ID); err != nil {
			return fmt.Errorf("pin alert: %w", err)
		}
	}
	return nil
}
