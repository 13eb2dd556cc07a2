package linear

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/purpom-media-lab/daily-report/report"
)

const defaultEndpoint = "https://api.linear.app"

// Client is a thin wrapper over Linear's GraphQL endpoint. The API key is
// supplied per call because each workspace carries its own credential.
type Client struct {
	rest *resty.Client
}

func NewClient() *Client {
	return &Client{
		rest: resty.New().
			SetBaseURL(defaultEndpoint).
			SetHeader("Content-Type", "application/json"),
	}
}

// WithEndpoint overrides the API endpoint, for tests.
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.rest.SetBaseURL(endpoint)
	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type issueNode struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updatedAt"`
	State     struct {
		Type string `json:"type"`
	} `json:"state"`
}

type issuesResponse struct {
	Data struct {
		Issues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issues"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

const issuesQuery = `query AssignedIssues($filter: IssueFilter) {
  issues(filter: $filter, orderBy: updatedAt) {
    nodes {
      title
      url
      updatedAt
      state { type }
    }
  }
}`

// Issues runs the assigned-issues query with the given filter.
func (c *Client) Issues(ctx context.Context, apiKey string, filter map[string]any) ([]report.Issue, error) {
	var response issuesResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Authorization", apiKey).
		SetBody(graphqlRequest{Query: issuesQuery, Variables: map[string]any{"filter": filter}}).
		SetResult(&response).
		Post("/graphql")
	if err != nil {
		return nil, errors.Wrap(err, "linear request failed")
	}
	if resp.IsError() {
		return nil, fmt.Errorf("received non 2xx status code from linear: %s", string(resp.Body()))
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("linear query failed: %s", response.Errors[0].Message)
	}

	issues := make([]report.Issue, 0, len(response.Data.Issues.Nodes))
	for _, node := range response.Data.Issues.Nodes {
		issues = append(issues, report.Issue{
			Title:     node.Title,
			URL:       node.URL,
			State:     node.State.Type,
			UpdatedAt: node.UpdatedAt,
		})
	}
	return issues, nil
}
