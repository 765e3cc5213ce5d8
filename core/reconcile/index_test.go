package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIndex(t *testing.T) {
	records := []RegistryRecord{
		{GivenName: "Anna", FamilyName: "Muster", Class: "5a", StudentID: "S1"},
		{GivenName: "Ben", FamilyName: "Beispiel", Class: "5b", StudentID: "S2"},
		{GivenName: "Carla", FamilyName: "Test", Class: " 5a ", StudentID: "S3"},
	}

	idx := BuildIndex(records)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"5a", "5b"}, idx.Classes())

	t.Run("BucketKeepsInputOrder", func(t *testing.T) {
		bucket := idx.Lookup("5a")
		if assert.Len(t, bucket, 2) {
			assert.Equal(t, "S1", bucket[0].StudentID)
			assert.Equal(t, "S3", bucket[1].StudentID)
		}
	})

	t.Run("LookupTrimsLabel", func(t *testing.T) {
		assert.Len(t, idx.Lookup(" 5b"), 1)
	})

	t.Run("UnknownClassIsEmpty", func(t *testing.T) {
		assert.Empty(t, idx.Lookup("9z"))
	})

	t.Run("EveryRecordInOneBucket", func(t *testing.T) {
		total := 0
		for _, class := range idx.Classes() {
			for _, rec := range idx.Lookup(class) {
				assert.Equal(t, class, classKey(rec.Class))
				total++
			}
		}
		assert.Equal(t, len(records), total)
	})
}

func TestRosterIndex_Nil(t *testing.T) {
	var idx *RosterIndex
	assert.Empty(t, idx.Lookup("5a"))
	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Classes())
}
