package report

import (
	"encoding/json"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeMinimal(t *testing.T) {
	blocks := Compose(ClockIn, Submission{Reporter: "U024BE7LH"})

	require.Len(t, blocks, 2)
	banner, ok := blocks[0].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, ":newspaper: |   *出勤*   |:newspaper: <@U024BE7LH>", banner.Text.Text)

	_, ok = blocks[1].(*slack.DividerBlock)
	assert.True(t, ok)
}

func TestComposeClockOutSuppressesBlankSections(t *testing.T) {
	blocks := Compose(ClockOut, Submission{
		Reporter: "U024BE7LH",
		Issues:   []SelectedIssue{{Title: "Fix bug", URL: "https://x/1"}},
		Trouble:  "blocked on review",
	})

	texts := sectionTexts(blocks)
	require.Len(t, blocks, 6)
	assert.Equal(t, []string{
		":newspaper: |   *退勤*   |:newspaper: <@U024BE7LH>",
		":calendar: |   *今日取り組んだissue*  | :calendar: ",
		"●  <https://x/1|Fix bug>",
		" :loud_sound: *困っていること・躓いていること* :loud_sound:",
		"blocked on review",
	}, texts)
}

func TestComposeFullClockOutOrdering(t *testing.T) {
	blocks := Compose(ClockOut, Submission{
		Reporter: "U1",
		Issues: []SelectedIssue{
			{Title: "First", URL: "https://x/1"},
			{Title: "Second", URL: "https://x/2"},
		},
		OtherTasks: "reviewed PRs",
		Trouble:    "flaky CI",
		Contact:    "leaving early tomorrow",
	})

	texts := sectionTexts(blocks)
	assert.Equal(t, []string{
		":newspaper: |   *退勤*   |:newspaper: <@U1>",
		":calendar: |   *今日取り組んだissue*  | :calendar: ",
		"●  <https://x/1|First>",
		"●  <https://x/2|Second>",
		":calendar: |   *その他今日やったこと*  | :calendar: ",
		"reviewed PRs",
		" :loud_sound: *困っていること・躓いていること* :loud_sound:",
		"flaky CI",
		" :loud_sound: *連絡事項* :loud_sound:",
		"leaving early tomorrow",
	}, texts)
}

func TestComposeTroubleOnlyOnClockOut(t *testing.T) {
	blocks := Compose(ClockIn, Submission{Reporter: "U1", Trouble: "should not appear"})
	for _, text := range sectionTexts(blocks) {
		assert.NotContains(t, text, "should not appear")
	}
}

func TestComposeDeterministic(t *testing.T) {
	submission := Submission{
		Reporter:   "U1",
		Issues:     []SelectedIssue{{Title: "Fix bug", URL: "https://x/1"}},
		OtherTasks: "misc",
	}

	first, err := json.Marshal(Compose(ClockIn, submission))
	require.NoError(t, err)
	second, err := json.Marshal(Compose(ClockIn, submission))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func sectionTexts(blocks []slack.Block) []string {
	var texts []string
	for _, block := range blocks {
		if section, ok := block.(*slack.SectionBlock); ok {
			texts = append(texts, section.Text.Text)
		}
	}
	return texts
}
