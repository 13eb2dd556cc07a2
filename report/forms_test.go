package report

import (
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpom-media-lab/daily-report/workspace"
)

var testWorkspaces = []workspace.Option{
	{Name: "Purpom Media Lab", ID: "purpom-media-lab"},
	{Name: "アクティブコア", ID: "active-core-swat"},
}

func TestSelectionModal(t *testing.T) {
	tests := []struct {
		flow       Flow
		title      string
		callbackID string
		userAction string
	}{
		{ClockIn, "出勤", "in_new_modal", "users_select_in_action"},
		{ClockOut, "退勤", "out_new_modal", "users_select_out_action"},
	}

	for _, tc := range tests {
		t.Run(string(tc.flow), func(t *testing.T) {
			view := SelectionModal(tc.flow, testWorkspaces)

			assert.Equal(t, tc.callbackID, view.CallbackID)
			assert.Equal(t, tc.title, view.Title.Text)
			assert.Equal(t, "送信", view.Submit.Text)
			assert.Equal(t, "キャンセル", view.Close.Text)

			blocks := view.Blocks.BlockSet
			require.Len(t, blocks, 2)

			userSection, ok := blocks[0].(*slack.SectionBlock)
			require.True(t, ok)
			assert.Equal(t, BlockUser, userSection.BlockID)
			require.NotNil(t, userSection.Accessory.SelectElement)
			assert.Equal(t, tc.userAction, userSection.Accessory.SelectElement.ActionID)
			assert.EqualValues(t, slack.OptTypeUser, userSection.Accessory.SelectElement.Type)

			workspaceSection, ok := blocks[1].(*slack.SectionBlock)
			require.True(t, ok)
			assert.Equal(t, BlockWorkspace, workspaceSection.BlockID)
			require.NotNil(t, workspaceSection.Accessory.SelectElement)
			options := workspaceSection.Accessory.SelectElement.Options
			require.Len(t, options, len(testWorkspaces))
			for i, option := range options {
				assert.Equal(t, testWorkspaces[i].ID, option.Value)
				assert.Equal(t, testWorkspaces[i].Name, option.Text.Text)
			}

			assert.NotEqual(t, userSection.BlockID, workspaceSection.BlockID)
		})
	}
}

func TestDynamicBlocksWithoutIssues(t *testing.T) {
	for _, flow := range []Flow{ClockIn, ClockOut} {
		t.Run(string(flow), func(t *testing.T) {
			blocks := DynamicBlocks(flow, nil)

			_, ok := blocks[0].(*slack.DividerBlock)
			require.True(t, ok)

			ids := inputBlockIDs(t, blocks)
			assert.NotContains(t, ids, BlockIssues)
			assert.Contains(t, ids, BlockTodo)
			assert.Contains(t, ids, BlockContact)
			if flow == ClockOut {
				assert.Equal(t, []string{BlockTodo, BlockTrouble, BlockContact}, ids)
			} else {
				assert.Equal(t, []string{BlockTodo, BlockContact}, ids)
			}
		})
	}
}

func TestDynamicBlocksWithIssues(t *testing.T) {
	issues := []Issue{
		{Title: "Fix bug", URL: "https://linear.app/x/issue/1"},
		{Title: "Write docs", URL: "https://linear.app/x/issue/2"},
	}

	blocks := DynamicBlocks(ClockIn, issues)

	ids := inputBlockIDs(t, blocks)
	assert.Equal(t, []string{BlockIssues, BlockTodo, BlockContact}, ids)

	picker, ok := blocks[1].(*slack.InputBlock)
	require.True(t, ok)
	assert.True(t, picker.Optional)

	element, ok := picker.Element.(*slack.MultiSelectBlockElement)
	require.True(t, ok)
	require.Len(t, element.Options, len(issues))
	for i, option := range element.Options {
		assert.Equal(t, issues[i].URL, option.Value)
		assert.Equal(t, issues[i].Title, option.Text.Text)
	}
}

func TestDynamicBlocksTrailingSectionsConverge(t *testing.T) {
	issues := []Issue{{Title: "Fix bug", URL: "https://x/1", UpdatedAt: time.Now()}}

	withIssues := inputBlockIDs(t, DynamicBlocks(ClockOut, issues))
	withoutIssues := inputBlockIDs(t, DynamicBlocks(ClockOut, nil))

	// Same trailing inputs whether or not the picker is present.
	assert.Equal(t, withIssues[1:], withoutIssues)
}

func TestConfirmationModal(t *testing.T) {
	blocks := DynamicBlocks(ClockOut, nil)
	view := ConfirmationModal(ClockOut, blocks)

	assert.Equal(t, "daily_report_out_post", view.CallbackID)
	assert.Equal(t, "退勤", view.Title.Text)
	assert.Equal(t, "送信", view.Submit.Text)
	assert.Len(t, view.Blocks.BlockSet, len(blocks))
}

// inputBlockIDs returns the block ids of the input blocks in order, and
// checks every input is optional.
func inputBlockIDs(t *testing.T, blocks []slack.Block) []string {
	t.Helper()

	var ids []string
	seen := map[string]bool{}
	for _, block := range blocks {
		input, ok := block.(*slack.InputBlock)
		if !ok {
			continue
		}
		assert.True(t, input.Optional, "input %s should be optional", input.BlockID)
		assert.False(t, seen[input.BlockID], "duplicate block id %s", input.BlockID)
		seen[input.BlockID] = true
		ids = append(ids, input.BlockID)
	}
	return ids
}
