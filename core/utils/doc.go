// Package utils provides small conversion helpers shared by the tabular readers and the
// HTTP handlers, where cell and query values arrive as loosely formatted strings.
package utils
