package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/flanksource/commons/logger"
	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"

	"github.com/purpom-media-lab/daily-report/report"
	"github.com/purpom-media-lab/daily-report/workspace"
)

// ChatClient is the outbound Slack surface the router needs.
type ChatClient interface {
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	UpdateView(ctx context.Context, viewID string, view slack.ModalViewRequest) error
	PostMessage(ctx context.Context, channel string, blocks []slack.Block) error
	UserEmail(ctx context.Context, userID string) (string, error)
}

// IssueLookup fetches the issues offered in the report form.
type IssueLookup interface {
	RelevantIssues(ctx context.Context, flow report.Flow, email, apiKey string) ([]report.Issue, error)
}

// Router dispatches Slack interaction payloads (shortcut, block action,
// view submission) through the report pipeline. It holds no per-user
// state; Slack serializes a user's interactions with one open modal, and
// every side effect (open/update a view by id, one post per submission
// event) is safe against a duplicate delivery.
type Router struct {
	chat          ChatClient
	lookup        IssueLookup
	registry      *workspace.Registry
	channel       string
	signingSecret string
}

func NewRouter(chat ChatClient, lookup IssueLookup, registry *workspace.Registry, channel, signingSecret string) *Router {
	return &Router{
		chat:          chat,
		lookup:        lookup,
		registry:      registry,
		channel:       channel,
		signingSecret: signingSecret,
	}
}

// RegisterRoutes attaches the event endpoint and probes.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.POST("/slack/events", r.Handle)

	e.GET("/live", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/ready", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}

// Handle verifies, parses and dispatches one interaction payload. Slack
// expects the acknowledgment within its 3s deadline, so all work happens
// inline before responding.
func (r *Router) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read body")
	}

	if err := r.verifySignature(c.Request().Header, body); err != nil {
		logger.Warnf("rejected event with bad signature: %v", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form body")
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(form.Get("payload")), &callback); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed interaction payload")
	}

	eventsReceived.WithLabelValues(string(callback.Type)).Inc()

	ctx := c.Request().Context()
	switch callback.Type {
	case slack.InteractionTypeShortcut:
		return r.handleShortcut(c, ctx, callback)

	case slack.InteractionTypeBlockActions:
		// Picker interactions inside an open modal carry no work of their
		// own; the values arrive again with the view submission.
		return c.NoContent(http.StatusOK)

	case slack.InteractionTypeViewSubmission:
		if flow, ok := report.FlowBySelectionCallback(callback.View.CallbackID); ok {
			return r.handleSelection(c, ctx, flow, callback)
		}
		if flow, ok := report.FlowByReportCallback(callback.View.CallbackID); ok {
			return r.handleReport(c, ctx, flow, callback)
		}
		logger.Warnf("view submission with unknown callback id %q", callback.View.CallbackID)
		return c.NoContent(http.StatusOK)

	default:
		return c.NoContent(http.StatusOK)
	}
}

func (r *Router) handleShortcut(c echo.Context, ctx context.Context, callback slack.InteractionCallback) error {
	flow, ok := report.FlowByShortcut(callback.CallbackID)
	if !ok {
		logger.Warnf("shortcut with unknown callback id %q", callback.CallbackID)
		return c.NoContent(http.StatusOK)
	}

	view := report.SelectionModal(flow, r.registry.Options())
	if err := r.chat.OpenView(ctx, callback.TriggerID, view); err != nil {
		logger.Errorf("failed to open %s selection modal: %v", flow, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "views.open failed")
	}
	return c.NoContent(http.StatusOK)
}

// handleSelection turns the submitted user+workspace choice into the
// dynamic report form and replaces the open modal with it.
func (r *Router) handleSelection(c echo.Context, ctx context.Context, flow report.Flow, callback slack.InteractionCallback) error {
	selection, err := report.ParseSelection(flow, callback.View)
	if err != nil {
		var verr *report.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusOK, slack.NewErrorsViewSubmissionResponse(map[string]string{
				verr.Block: verr.Message,
			}))
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, err := r.chat.UserEmail(ctx, selection.UserID)
	if err != nil {
		logger.Errorf("failed to resolve email for %s: %v", selection.UserID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "users.profile.get failed")
	}

	// An unknown workspace resolves to an empty credential, which the
	// lookup reports as a failure; either way the flow continues with an
	// empty issue list.
	apiKey := r.registry.Credential(selection.WorkspaceID)
	issues, err := r.lookup.RelevantIssues(ctx, flow, email, apiKey)
	if err != nil {
		lookupFailures.WithLabelValues(selection.WorkspaceID).Inc()
		logger.Warnf("%s lookup for workspace %s degraded to no issues: %v", flow, selection.WorkspaceID, err)
		issues = nil
	}

	view := report.ConfirmationModal(flow, report.DynamicBlocks(flow, issues))
	if err := r.chat.UpdateView(ctx, callback.View.ID, view); err != nil {
		// The ack below also carries the replacement view, so a failed
		// views.update is not fatal.
		logger.Warnf("views.update for %s failed: %v", callback.View.ID, err)
	}

	return c.JSON(http.StatusOK, slack.NewUpdateViewSubmissionResponse(&view))
}

// handleReport composes the final message from the submitted form and
// posts it to the report channel.
func (r *Router) handleReport(c echo.Context, ctx context.Context, flow report.Flow, callback slack.InteractionCallback) error {
	submission := report.ParseReport(flow, callback.User.ID, callback.View)
	blocks := report.Compose(flow, submission)

	if err := r.chat.PostMessage(ctx, r.channel, blocks); err != nil {
		logger.Errorf("failed to post %s report for %s: %v", flow, callback.User.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "chat.postMessage failed")
	}

	reportsPosted.WithLabelValues(string(flow)).Inc()
	return c.NoContent(http.StatusOK)
}

func (r *Router) verifySignature(header http.Header, body []byte) error {
	verifier, err := slack.NewSecretsVerifier(header, r.signingSecret)
	if err != nil {
		return err
	}
	if _, err := verifier.Write(body); err != nil {
		return err
	}
	return verifier.Ensure()
}
