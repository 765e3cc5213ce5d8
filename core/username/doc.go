// Package username derives parent login names from a given and family name.
//
// Two styles are supported:
//   - dotted: "<first given token>.<family without spaces and hyphens>", with the
//     collision override table applied.
//   - short: the first four characters of each part, concatenated.
//
// Names are transliterated first (umlauts, ß, remaining diacritics), and the result is
// always lowercase. A Generator is immutable and safe for concurrent use; the same inputs
// and Mapping always produce the same username, so a parent keeps their login across runs.
//
// # Mapping files
//
// LoadMapping reads a yaml, json or toml file through Viper:
//
//	fold_diacritics: true
//	transliterations:
//	  - from: "Ø"
//	    to: "Oe"
//	collisions:
//	  - anna.schmidt
//	alternatives:
//	  anna.schmidt: anna.schmidt2
package username
