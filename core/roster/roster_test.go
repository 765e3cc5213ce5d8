package roster_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"elternaccounts/core/reconcile"
	"elternaccounts/core/roster"
	"elternaccounts/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submissionsCSV = `Zeitstempel,Kontrolliert,Vorname des Elternteils,Nachname des Elternteils,Emailadresse des Elternteils,Vorname des 1. Kindes,Nachname des 1. Kindes,Klasse des 1. Kindes,Vorname des 2. Kindes,Nachname des 2. Kindes,Klasse des 2. Kindes
2024-08-01 10:00,1,Eva,Muster,Eva.Muster@Example.org,Ana,Muster,5a,Ben,Muster,7b
2024-08-01 11:00,,Tom,Lee,tom@example.org,Tim,Lee,6c,,,
2024-08-02 09:30,1.0,Jean-Luc,Müller-Weiss,jl@example.org,Clara,Müller-Weiss, 6c ,,,
`

const registryCSV = `"webuntisKlasse";"US_firstName";"US_lastName";"AT_webuntisUid"
"5a";"Anna";"Muster";"S1"
"7b";"Ben";"Muster";"S2"
"6c";"Clara";"Müller-Weiss";"S3"
`

func TestReadSubmissions(t *testing.T) {
	subs, err := roster.ReadSubmissions(strings.NewReader(submissionsCSV))
	require.NoError(t, err)
	require.Len(t, subs, 3)

	first := subs[0]
	assert.True(t, first.Verified)
	assert.Equal(t, "Eva", first.ParentGivenName)
	assert.Equal(t, "Eva.Muster@Example.org", first.ParentEmail)
	require.Len(t, first.Children, reconcile.MaxChildren)
	assert.Equal(t, reconcile.Child{GivenName: "Ana", FamilyName: "Muster", Class: "5a"}, first.Children[0])
	assert.Equal(t, reconcile.Child{GivenName: "Ben", FamilyName: "Muster", Class: "7b"}, first.Children[1])
	assert.Equal(t, reconcile.Child{}, first.Children[2])

	assert.False(t, subs[1].Verified)
	assert.True(t, subs[2].Verified)
	assert.Equal(t, "6c", subs[2].Children[0].Class)
}

func TestReadSubmissions_MissingColumn(t *testing.T) {
	in := "Kontrolliert,Vorname des Elternteils,Nachname des Elternteils\n1,Eva,Muster\n"
	_, err := roster.ReadSubmissions(strings.NewReader(in))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrMissingInputField))
	assert.Contains(t, err.Error(), roster.ColParentEmail)
}

func TestReadRegistry(t *testing.T) {
	records, err := roster.ReadRegistry(strings.NewReader(registryCSV))
	require.NoError(t, err)

	assert.Equal(t, []reconcile.RegistryRecord{
		{GivenName: "Anna", FamilyName: "Muster", Class: "5a", StudentID: "S1"},
		{GivenName: "Ben", FamilyName: "Muster", Class: "7b", StudentID: "S2"},
		{GivenName: "Clara", FamilyName: "Müller-Weiss", Class: "6c", StudentID: "S3"},
	}, records)
}

func TestReadRegistry_MissingColumn(t *testing.T) {
	in := "\"webuntisKlasse\";\"US_firstName\";\"US_lastName\"\n\"5a\";\"Anna\";\"Muster\"\n"
	_, err := roster.ReadRegistry(strings.NewReader(in))
	assert.ErrorIs(t, err, tabular.ErrMissingInputField)
}

func TestWriteAudit(t *testing.T) {
	second := 0.75
	entries := []reconcile.AuditEntry{
		{
			ParentGivenName: "Eva", ParentFamilyName: "Muster", Email: "eva@example.org", StudentID: "S1",
			ChildGivenName: "Ana", ChildFamilyName: "Muster", RegistryGivenName: "Anna", RegistryFamilyName: "Muster",
			BestScore: 10.0 / 11.0,
		},
		{
			ParentGivenName: "Tom", ParentFamilyName: "Klein", Email: "tom@example.org", StudentID: "S7",
			ChildGivenName: "Marx", ChildFamilyName: "Klein", RegistryGivenName: "Max", RegistryFamilyName: "Klein",
			BestScore: 0.9, SecondScore: &second,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, roster.WriteAudit(&buf, entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(roster.AuditHeader, ";"), lines[0])
	assert.Equal(t, "Eva;Muster;eva@example.org;S1;Ana;Muster;Anna;Muster;S1;0.9090909090909091;", lines[1])
	assert.Equal(t, "Tom;Klein;tom@example.org;S7;Marx;Klein;Max;Klein;S7;0.9;0.75", lines[2])
}

func TestWriteAccounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, roster.WriteAccounts(&buf, []reconcile.AccountEntry{
		{ParentGivenName: "Jean-Luc", ParentFamilyName: "Müller-Weiss", Email: "jl@example.org", StudentID: "S3", Username: "jeanmuel"},
	}))

	assert.Equal(t,
		"Eltern Vorname;Eltern Nachname;email;student-id;username\n"+
			"Jean-Luc;Müller-Weiss;jl@example.org;S3;jeanmuel\n",
		buf.String())
}

func TestWriteAccounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, roster.WriteAccounts(&buf, nil))
	assert.Equal(t, "Eltern Vorname;Eltern Nachname;email;student-id;username\n", buf.String())
}
