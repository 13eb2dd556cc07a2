package linear

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/purpom-media-lab/daily-report/report"
)

// ClockOutWindow is the sliding wall-clock window for the clock-out
// lookup: only issues updated within the preceding 24 hours are offered.
// Deliberately not configurable.
const ClockOutWindow = 24 * time.Hour

// LookupError marks an issue lookup that failed; callers degrade to an
// empty issue list instead of aborting the flow.
type LookupError struct {
	Err error
}

func (e *LookupError) Error() string { return fmt.Sprintf("issue lookup failed: %v", e.Err) }

func (e *LookupError) Unwrap() error { return e.Err }

// RelevantIssues returns the issues assigned to email that the report form
// should offer for the given flow:
//
//   - clock-in: unstarted or started issues, no time bound
//   - clock-out: started or completed issues updated within ClockOutWindow,
//     most recently updated first
//
// An empty credential or any transport/API failure yields a LookupError.
func (c *Client) RelevantIssues(ctx context.Context, flow report.Flow, email, apiKey string) ([]report.Issue, error) {
	return c.relevantIssues(ctx, flow, email, apiKey, time.Now())
}

func (c *Client) relevantIssues(ctx context.Context, flow report.Flow, email, apiKey string, now time.Time) ([]report.Issue, error) {
	if apiKey == "" {
		return nil, &LookupError{Err: fmt.Errorf("no credential for workspace")}
	}

	filter := map[string]any{
		"assignee": map[string]any{"email": map[string]any{"eq": email}},
		"state":    map[string]any{"type": map[string]any{"in": stateTypes(flow)}},
	}
	if flow == report.ClockOut {
		filter["updatedAt"] = map[string]any{"gt": now.Add(-ClockOutWindow).Format(time.RFC3339)}
	}

	issues, err := c.Issues(ctx, apiKey, filter)
	if err != nil {
		logger.Warnf("linear lookup for %s: %v", email, err)
		return nil, &LookupError{Err: err}
	}

	if flow == report.ClockOut {
		issues = lo.Filter(issues, func(issue report.Issue, _ int) bool {
			return WithinWindow(issue, now)
		})
		sortByUpdated(issues)
	}
	return issues, nil
}

// WithinWindow reports whether an issue's last update falls inside the
// clock-out window ending at now. The boundary is inclusive: an update
// exactly 24h old is still offered.
func WithinWindow(issue report.Issue, now time.Time) bool {
	return !issue.UpdatedAt.Before(now.Add(-ClockOutWindow))
}

// sortByUpdated orders issues most recently updated first, keeping the
// input order for equal timestamps.
func sortByUpdated(issues []report.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].UpdatedAt.After(issues[j].UpdatedAt)
	})
}

func stateTypes(flow report.Flow) []string {
	if flow == report.ClockIn {
		return []string{"unstarted", "started"}
	}
	return []string{"started", "completed"}
}
