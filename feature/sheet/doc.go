// Package sheet maintains the master submission sheet.
//
// Parents register through a Nextcloud form. Staff verify each submission in the master
// sheet by setting Kontrolliert to 1. Update pulls the latest forms export and appends
// new submissions without touching rows already in the sheet, after copying the previous
// sheet to a timestamped backup.
package sheet
