package report

import (
	"github.com/samber/lo"
	"github.com/slack-go/slack"

	"github.com/purpom-media-lab/daily-report/workspace"
)

// SelectionModal builds the initial modal: a user picker and a workspace
// picker. Deterministic for a given flow and workspace set.
func SelectionModal(flow Flow, workspaces []workspace.Option) slack.ModalViewRequest {
	userSelect := slack.NewOptionsSelectBlockElement(
		slack.OptTypeUser,
		plainText("アカウントを選択"),
		flow.userActionID(),
	)

	workspaceOptions := lo.Map(workspaces, func(w workspace.Option, _ int) *slack.OptionBlockObject {
		return slack.NewOptionBlockObject(w.ID, plainText(w.Name), nil)
	})
	workspaceSelect := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic,
		plainText("ワークスペースを選択"),
		flow.workspaceActionID(),
		workspaceOptions...,
	)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			markdown(flow.userPrompt()),
			nil,
			slack.NewAccessory(userSelect),
			slack.SectionBlockOptionBlockID(BlockUser),
		),
		slack.NewSectionBlock(
			markdown(workspacePrompt),
			nil,
			slack.NewAccessory(workspaceSelect),
			slack.SectionBlockOptionBlockID(BlockWorkspace),
		),
	}

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: flow.SelectionCallbackID(),
		Title:      plainText(flow.title()),
		Close:      plainText("キャンセル"),
		Submit:     plainText("送信"),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

// DynamicBlocks builds the report form body. When issues is empty the
// issue picker is omitted and the free-text inputs stand alone; either way
// the trailing inputs are identical. All inputs are optional.
func DynamicBlocks(flow Flow, issues []Issue) []slack.Block {
	blocks := []slack.Block{slack.NewDividerBlock()}

	if len(issues) > 0 {
		options := lo.Map(issues, func(issue Issue, _ int) *slack.OptionBlockObject {
			return slack.NewOptionBlockObject(issue.URL, plainText(issue.Title), nil)
		})
		picker := slack.NewOptionsMultiSelectBlockElement(
			slack.MultiOptTypeStatic,
			plainText("issueを選択"),
			flow.issuesActionID(),
			options...,
		)
		blocks = append(blocks, optionalInput(BlockIssues, flow.issuesLabel(), picker))
	}

	blocks = append(blocks, optionalInput(BlockTodo, flow.todoLabel(), textInput(flow)))
	if flow == ClockOut {
		blocks = append(blocks, optionalInput(BlockTrouble, troubleLabel, textInput(flow)))
	}
	blocks = append(blocks, optionalInput(BlockContact, contactLabel, textInput(flow)))

	return blocks
}

// ConfirmationModal wraps the dynamic blocks with the modal chrome whose
// submission posts the report.
func ConfirmationModal(flow Flow, blocks []slack.Block) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: flow.ReportCallbackID(),
		Title:      plainText(flow.title()),
		Close:      plainText("キャンセル"),
		Submit:     plainText("送信"),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

func optionalInput(blockID, label string, element slack.BlockElement) *slack.InputBlock {
	input := slack.NewInputBlock(blockID, plainText(label), nil, element)
	input.Optional = true
	return input
}

func textInput(flow Flow) *slack.PlainTextInputBlockElement {
	element := slack.NewPlainTextInputBlockElement(nil, flow.textActionID())
	element.Multiline = true
	return element
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}
