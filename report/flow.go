package report

import "time"

// Flow selects between the clock-in (出勤) and clock-out (退勤) report
// pipelines. The two flows share their structure and differ only in
// wording, element ids and which Linear issue states are relevant.
type Flow string

const (
	ClockIn  Flow = "in"
	ClockOut Flow = "out"
)

// Shortcut callback ids registered in the Slack app manifest.
const (
	ShortcutClockIn  = "daily_report_in"
	ShortcutClockOut = "daily_report_out"
)

// Block and action ids. These double as the keys used to read submitted
// values back out of the view state, so they must stay stable.
const (
	BlockUser      = "user_section"
	BlockWorkspace = "workspace_section"
	BlockIssues    = "linear_section"
	BlockTodo      = "todo_input"
	BlockTrouble   = "trouble_input"
	BlockContact   = "contact_input"
)

// Issue is one Linear issue offered in the report picker.
type Issue struct {
	Title     string
	URL       string
	State     string
	UpdatedAt time.Time
}

// FlowByShortcut maps an inbound shortcut callback id to its flow.
func FlowByShortcut(callbackID string) (Flow, bool) {
	switch callbackID {
	case ShortcutClockIn:
		return ClockIn, true
	case ShortcutClockOut:
		return ClockOut, true
	}
	return "", false
}

// FlowBySelectionCallback maps a selection modal callback id to its flow.
func FlowBySelectionCallback(callbackID string) (Flow, bool) {
	switch callbackID {
	case ClockIn.SelectionCallbackID():
		return ClockIn, true
	case ClockOut.SelectionCallbackID():
		return ClockOut, true
	}
	return "", false
}

// FlowByReportCallback maps a report modal callback id to its flow.
func FlowByReportCallback(callbackID string) (Flow, bool) {
	switch callbackID {
	case ClockIn.ReportCallbackID():
		return ClockIn, true
	case ClockOut.ReportCallbackID():
		return ClockOut, true
	}
	return "", false
}

func (f Flow) SelectionCallbackID() string { return string(f) + "_new_modal" }

func (f Flow) ReportCallbackID() string { return "daily_report_" + string(f) + "_post" }

func (f Flow) userActionID() string { return "users_select_" + string(f) + "_action" }

func (f Flow) workspaceActionID() string { return "static_select_" + string(f) + "_action" }

func (f Flow) issuesActionID() string { return "multi_static_select_" + string(f) + "_action" }

func (f Flow) textActionID() string { return "plain_text_input_" + string(f) + "_action" }

func (f Flow) title() string {
	if f == ClockIn {
		return "出勤"
	}
	return "退勤"
}

func (f Flow) userPrompt() string {
	return f.title() + "するアカウントを選択してください。"
}

func (f Flow) issuesLabel() string {
	if f == ClockIn {
		return "今日やることをlinearから選択"
	}
	return "今日やったことをlinearから選択"
}

func (f Flow) todoLabel() string {
	if f == ClockIn {
		return "その他今日やることを入力"
	}
	return "その他今日やったことを入力"
}

func (f Flow) issuesHeader() string {
	if f == ClockIn {
		return ":calendar: |   *今日取り組むissue*  | :calendar: "
	}
	return ":calendar: |   *今日取り組んだissue*  | :calendar: "
}

func (f Flow) todoHeader() string {
	if f == ClockIn {
		return ":calendar: |   *その他今日やること*  | :calendar: "
	}
	return ":calendar: |   *その他今日やったこと*  | :calendar: "
}

const (
	troubleLabel    = "困っていること・躓いていること"
	troubleHeader   = " :loud_sound: *困っていること・躓いていること* :loud_sound:"
	contactLabel    = "連絡事項"
	contactHeader   = " :loud_sound: *連絡事項* :loud_sound:"
	workspacePrompt = "ワークスペースを選択してください。"
)
