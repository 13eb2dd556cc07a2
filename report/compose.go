package report

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Compose renders a submission into the blocks posted to the report
// channel. The banner and divider are always present; each optional
// section contributes a header plus its content only when non-blank.
// Pure: identical submissions yield identical output.
func Compose(flow Flow, submission Submission) []slack.Block {
	banner := fmt.Sprintf(":newspaper: |   *%s*   |:newspaper: <@%s>", flow.title(), submission.Reporter)
	blocks := []slack.Block{
		slack.NewSectionBlock(markdown(banner), nil, nil),
		slack.NewDividerBlock(),
	}

	if len(submission.Issues) > 0 {
		blocks = append(blocks, section(flow.issuesHeader()))
		for _, issue := range submission.Issues {
			blocks = append(blocks, section(fmt.Sprintf("●  <%s|%s>", issue.URL, issue.Title)))
		}
	}

	if submission.OtherTasks != "" {
		blocks = append(blocks, section(flow.todoHeader()), section(submission.OtherTasks))
	}

	if flow == ClockOut && submission.Trouble != "" {
		blocks = append(blocks, section(troubleHeader), section(submission.Trouble))
	}

	if submission.Contact != "" {
		blocks = append(blocks, section(contactHeader), section(submission.Contact))
	}

	return blocks
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(markdown(text), nil, nil)
}
