package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/autobrr/rocketdeploy/pkg/config"
	"github.com/autobrr/rocketdeploy/pkg/hooks"
	"github.com/autobrr/rocketdeploy/pkg/notification"
)

// long message templates wrap instead of stretching the terminal
const maxValueWidth = 60

// taskRows lists every registered task with the hook points it is bound to.
func taskRows(registry *hooks.Registry, lifecycle *hooks.Lifecycle) [][]string {
	rows := make([][]string, 0)
	for _, name := range registry.Names() {
		task, _ := registry.Get(name)

		bound := lifecycle.BoundTo(name)
		hookPoints := "-"
		if len(bound) > 0 {
			hookPoints = strings.Join(bound, "\n")
		}

		rows = append(rows, []string{name, task.Description, hookPoints})
	}
	return rows
}

// settingsRows lists the resolved notification settings. The webhook is
// reduced to its domain so the token never reaches the terminal.
func settingsRows(s notification.Settings) [][]string {
	webhook := "(not set)"
	if s.WebhookURL != "" {
		webhook = config.WebhookDomain(s.WebhookURL)
	}

	when := ""
	if s.When != nil {
		when = s.When.Text
	}

	rows := [][]string{
		{"webhook", webhook},
		{"title", s.Title},
		{"username", s.Username},
		{"channel", s.Channel},
		{"room_id", s.RoomID},
		{"icon_url", s.IconURL},
		{"icon_emoji", s.IconEmoji},
	}

	for _, kind := range notification.Kinds {
		msg, color := s.Message(kind)
		rows = append(rows,
			[]string{kind.String() + " text", msg},
			[]string{kind.String() + " color", color},
		)
	}

	return append(rows, []string{"when", when})
}

func renderTable(title string, headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	// the first column holds names, the rest hold values that may be long
	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		cc := table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
		if i > 0 {
			cc.WidthMax = maxValueWidth
		}
		columnConfigs = append(columnConfigs, cc)
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
