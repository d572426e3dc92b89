package simulate

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report is the outcome of a simulated session.
type Report struct {
	Rows []Row
}

// Last returns the final row.
func (r *Report) Last() Row {
	if len(r.Rows) == 0 {
		return Row{}
	}
	return r.Rows[len(r.Rows)-1]
}

var reportHeader = table.Row{"#", "Step", "Index", "Length", "Locked", "Clock", "Timers", "Dots", "Live region", "Events"}

// Render formats the report as a table.
func (r *Report) Render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(reportHeader)

	for _, row := range r.Rows {
		index := "-"
		if row.Length > 0 {
			index = strconv.Itoa(row.Index)
		}
		step := row.Command
		if !row.Connected {
			step += " (disconnected)"
		}
		tw.AppendRow(table.Row{
			row.Step,
			step,
			index,
			row.Length,
			yesNo(row.Animating),
			row.Clock.String(),
			row.Pending,
			row.Dots,
			row.Announcement,
			row.Events,
		})
	}

	configs := make([]table.ColumnConfig, 0, len(reportHeader))
	for i := range reportHeader {
		align := text.AlignLeft
		switch i {
		case 0, 2, 3, 5, 6, 7:
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
