package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"podwiki/pkg/journal"
)

const (
	historyTimeFormat = "2006-01-02 15:04:05"
	shortRunID        = 8
	maxTargetWidth    = 48
)

// historyTable lays out journal events newest first. Consecutive events from
// the same run share one merged run cell.
func historyTable(events []journal.Event) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Run", "Time", "Episode", "Action", "Target", "Dry run"})

	for _, evt := range events {
		dry := ""
		if evt.DryRun {
			dry = "yes"
		}
		tw.AppendRow(table.Row{
			shortRun(evt.RunID),
			evt.At.Local().Format(historyTimeFormat),
			evt.Episode,
			string(evt.Action),
			evt.Target,
			dry,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Run", AutoMerge: true, VAlign: text.VAlignTop},
		{Name: "Target", WidthMax: maxTargetWidth},
		{Name: "Dry run", Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	tw.SetCaption("%d event(s)", len(events))
	return tw.Render()
}

func shortRun(id string) string {
	if len(id) > shortRunID {
		return id[:shortRunID]
	}
	return id
}
