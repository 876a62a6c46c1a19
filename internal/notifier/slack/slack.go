// Package slack announces notable match moments to a Slack channel.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside/rallyboard/internal/metrics"
	"github.com/courtside/rallyboard/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Announcer = (*Announcer)(nil)

// Announcer handles sending notifications to Slack.
type Announcer struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewAnnouncer creates a new Announcer.
func NewAnnouncer(token, channelID string, metrics metrics.Metrics) *Announcer {
	api := slack.New(token)
	return &Announcer{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewAnnouncerWithAPI creates a new Announcer with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewAnnouncerWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Announcer {
	return &Announcer{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Announcer) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendSetWonNotification posts a set-won announcement to the channel.
func (s *Announcer) SendSetWonNotification(announcement notifier.SetWonAnnouncement, dryRun bool) error {
	msg := s.formatSetWon(announcement)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatSetWon creates the Slack message for a won set using Block Kit.
func (s *Announcer) formatSetWon(a notifier.SetWonAnnouncement) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏸 Set over! 🏸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s take set %d!\n%s %d - %d %s",
		a.WinnerName, a.SetNumber, a.TeamAName, a.TeamAScore, a.TeamBScore, a.TeamBName)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
