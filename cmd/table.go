package cmd

import (
	"strconv"

	"elternaccounts/core/reconcile"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func summaryTable(s reconcile.Summary) string {
	rows := [][]string{
		{"Submissions", strconv.Itoa(s.Submissions)},
		{"Verified", strconv.Itoa(s.Verified)},
		{"Children", strconv.Itoa(s.Children)},
		{"Registry records", strconv.Itoa(s.RegistryRecords)},
		{"No candidate", strconv.Itoa(s.NoCandidate)},
		{"Ambiguous", strconv.Itoa(s.Ambiguous)},
		{"Low confidence", strconv.Itoa(s.LowConfidence)},
		{"Accepted", strconv.Itoa(s.Accepted)},
	}
	return renderTable([]string{"Metric", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

func ambiguousTable(entries []reconcile.AuditEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		second := ""
		if e.SecondScore != nil {
			second = strconv.FormatFloat(*e.SecondScore, 'f', 3, 64)
		}
		rows = append(rows, []string{
			e.ParentGivenName + " " + e.ParentFamilyName,
			e.ChildGivenName + " " + e.ChildFamilyName,
			e.RegistryGivenName + " " + e.RegistryFamilyName,
			e.StudentID,
			strconv.FormatFloat(e.BestScore, 'f', 3, 64),
			e.SecondStudentID,
			second,
		})
	}
	return renderTable(
		[]string{"Parent", "Child (forms)", "Child (registry)", "ID", "Best", "Second ID", "Second"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
	)
}
