// Package mail collects parent e-mail addresses for the notification after accounts
// were created. Sending is done by the school's mail system.
package mail

import (
	"regexp"
	"strings"

	"elternaccounts/core/reconcile"
)

var addressPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// ExtractAddresses returns the addresses found in text, lowercased and de-duplicated in
// first-seen order.
func ExtractAddresses(text string) []string {
	return unique(addressPattern.FindAllString(text, -1))
}

// Recipients returns the distinct addresses of accounts in output order.
func Recipients(accounts []reconcile.AccountEntry) []string {
	emails := make([]string, 0, len(accounts))
	for _, a := range accounts {
		emails = append(emails, a.Email)
	}
	return unique(emails)
}

func unique(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
