package report

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/slack-go/slack"
)

// ValidationError reports a required field missing from a submitted view.
// Block names the offending block id so the error can be attached to the
// right input in the modal.
type ValidationError struct {
	Block   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s (%s)", e.Message, e.Block)
}

// Selection is the outcome of the first modal: who is reporting, against
// which workspace.
type Selection struct {
	UserID      string
	WorkspaceID string
}

// SelectedIssue is one issue picked in the report form.
type SelectedIssue struct {
	Title string
	URL   string
}

// Submission carries every field of the submitted report form. Only the
// reporter is required; everything else may be blank.
type Submission struct {
	Reporter   string
	Issues     []SelectedIssue
	OtherTasks string
	Trouble    string
	Contact    string
}

// ParseSelection extracts the user and workspace choice from the selection
// modal state. Both fields are required; a missing one is a ValidationError,
// never a silent default.
func ParseSelection(flow Flow, view slack.View) (Selection, error) {
	state := stateValues(view)

	userID := state[BlockUser][flow.userActionID()].SelectedUser
	if userID == "" {
		return Selection{}, &ValidationError{Block: BlockUser, Message: "アカウントが選択されていません。"}
	}

	workspaceID := state[BlockWorkspace][flow.workspaceActionID()].SelectedOption.Value
	if workspaceID == "" {
		return Selection{}, &ValidationError{Block: BlockWorkspace, Message: "ワークスペースが選択されていません。"}
	}

	return Selection{UserID: userID, WorkspaceID: workspaceID}, nil
}

// ParseReport extracts the report fields from the confirmation modal state.
// Every field is optional, so this cannot fail; absent blocks simply yield
// zero values.
func ParseReport(flow Flow, reporter string, view slack.View) Submission {
	state := stateValues(view)

	var issues []SelectedIssue
	if selected := state[BlockIssues][flow.issuesActionID()].SelectedOptions; len(selected) > 0 {
		issues = lo.Map(selected, func(option slack.OptionBlockObject, _ int) SelectedIssue {
			issue := SelectedIssue{URL: option.Value}
			if option.Text != nil {
				issue.Title = option.Text.Text
			}
			return issue
		})
	}

	return Submission{
		Reporter:   reporter,
		Issues:     issues,
		OtherTasks: strings.TrimSpace(state[BlockTodo][flow.textActionID()].Value),
		Trouble:    strings.TrimSpace(state[BlockTrouble][flow.textActionID()].Value),
		Contact:    strings.TrimSpace(state[BlockContact][flow.textActionID()].Value),
	}
}

func stateValues(view slack.View) map[string]map[string]slack.BlockAction {
	if view.State == nil {
		return nil
	}
	return view.State.Values
}
