package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"texbridge/internal/logparse"
)

type column struct {
	title string
	align text.Align
}

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		align := col.align
		if align == text.AlignDefault {
			align = text.AlignLeft
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// renderMessageTable lists daemon messages in log order. Severity cells are
// colored when colorize is set.
func renderMessageTable(messages []logparse.Message, colorize bool) string {
	rows := make([][]string, 0, len(messages))
	for _, msg := range messages {
		position := ""
		if msg.HasPosition() {
			position = msg.Line + ":" + msg.Col
		}
		severity := paint(statusKindFromSeverity(msg.Severity), msg.Severity, colorize)
		rows = append(rows, []string{severity, msg.Category, msg.What, position, msg.Details})
	}
	return renderTable([]column{
		{title: "Severity"},
		{title: "Category"},
		{title: "What"},
		{title: "Line:Col", align: text.AlignRight},
		{title: "Details"},
	}, rows)
}
