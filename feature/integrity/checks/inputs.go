package checks

import (
	"bytes"
	"context"
	"errors"

	"elternaccounts/core/storage"
	"elternaccounts/core/tabular"
)

// Input is an object a run reads, with the columns it must carry.
type Input struct {
	Key     string
	Comma   rune
	Columns []string
}

// InputReport is the state of one input object.
type InputReport struct {
	Key            string   `json:"key"`
	Present        bool     `json:"present"`
	Encoding       string   `json:"encoding,omitempty"`
	Rows           int      `json:"rows"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
	Error          string   `json:"error,omitempty"`
}

// CheckInputs downloads each input and verifies its header.
func CheckInputs(ctx context.Context, client storage.Client, bucket string, inputs []Input) ([]InputReport, error) {
	if err := CheckBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	reports := make([]InputReport, 0, len(inputs))
	for _, in := range inputs {
		report := InputReport{Key: in.Key, MissingColumns: []string{}, Status: "ok"}

		obj, err := storage.Download(ctx, client, bucket, in.Key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			report.Status = "missing"
			reports = append(reports, report)
			continue
		}
		if err != nil {
			return nil, err
		}
		report.Present = true

		table, err := tabular.Read(bytes.NewReader(obj.Data), tabular.Options{Comma: in.Comma})
		if err != nil {
			report.Status = "error"
			report.Error = err.Error()
			reports = append(reports, report)
			continue
		}
		report.Encoding = table.Encoding
		report.Rows = table.Len()

		for _, col := range in.Columns {
			if !table.Has(col) {
				report.MissingColumns = append(report.MissingColumns, col)
				report.Status = "error"
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}
