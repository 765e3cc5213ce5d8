package accounts

import (
	"bytes"
	"fmt"

	"elternaccounts/core/reconcile"
	"elternaccounts/core/roster"
)

// Outputs are the rendered files of one run.
type Outputs struct {
	Audit    []byte
	Accounts []byte
}

// Render writes both outputs to memory. Nothing is persisted unless both succeed.
func Render(result *reconcile.Result) (*Outputs, error) {
	var audit, accounts bytes.Buffer
	if err := roster.WriteAudit(&audit, result.Audit); err != nil {
		return nil, fmt.Errorf("failed to render audit: %w", err)
	}
	if err := roster.WriteAccounts(&accounts, result.Accounts); err != nil {
		return nil, fmt.Errorf("failed to render accounts: %w", err)
	}
	return &Outputs{Audit: audit.Bytes(), Accounts: accounts.Bytes()}, nil
}
