package chat

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// Slack wraps the Slack Web API calls this service performs. Handlers
// receive it through the events.ChatClient interface so they can be
// exercised without network access.
type Slack struct {
	api *slack.Client
}

func NewSlack(token string) *Slack {
	return &Slack{api: slack.New(token)}
}

// OpenView opens a modal against the interaction's trigger id.
func (s *Slack) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := s.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return errors.Wrap(err, "views.open failed")
	}
	return nil
}

// UpdateView replaces the modal identified by viewID.
func (s *Slack) UpdateView(ctx context.Context, viewID string, view slack.ModalViewRequest) error {
	if _, err := s.api.UpdateViewContext(ctx, view, "", "", viewID); err != nil {
		return errors.Wrap(err, "views.update failed")
	}
	return nil
}

// PostMessage posts blocks to a channel.
func (s *Slack) PostMessage(ctx context.Context, channel string, blocks []slack.Block) error {
	if _, _, err := s.api.PostMessageContext(ctx, channel, slack.MsgOptionBlocks(blocks...)); err != nil {
		return errors.Wrap(err, "chat.postMessage failed")
	}
	return nil
}

// UserEmail resolves a Slack user id to the email on their profile, which
// is how Linear identifies assignees.
func (s *Slack) UserEmail(ctx context.Context, userID string) (string, error) {
	profile, err := s.api.GetUserProfileContext(ctx, &slack.GetUserProfileParameters{UserID: userID})
	if err != nil {
		return "", errors.Wrap(err, "users.profile.get failed")
	}
	if profile.Email == "" {
		return "", fmt.Errorf("user %s has no email on their profile", userID)
	}
	return profile.Email, nil
}
