// Package roster maps the delimited files of a reconciliation run to and from the
// core types in package reconcile.
//
// Inputs:
//   - the submissions sheet (forms export merged into the master sheet), comma separated,
//     with German column names and up to three child slots per row;
//   - the registry export, semicolon separated and quoted.
//
// Outputs are semicolon separated: the audit file lists every match with its scores for
// manual control, the accounts file lists the logins to create.
package roster
