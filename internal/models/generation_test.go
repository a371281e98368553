package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceSlotSingleOccupancy(t *testing.T) {
	slot := &ReferenceSlot{}

	first := &ReferenceDocument{SourceName: "unit1.docx", ExtractedText: "chapter one", Origin: OriginUploaded}
	require.NoError(t, slot.Attach(first))

	second := &ReferenceDocument{SourceName: "unit2.docx", ExtractedText: "chapter two", Origin: OriginUploaded}
	err := slot.Attach(second)
	require.ErrorIs(t, err, ErrReferenceAttached)
	assert.Equal(t, "unit1.docx", slot.Get().SourceName)

	slot.Clear()
	require.NoError(t, slot.Attach(second))
	assert.Equal(t, "chapter two", slot.Text())
}

func TestReferenceSlotReplace(t *testing.T) {
	slot := &ReferenceSlot{}
	require.NoError(t, slot.Attach(&ReferenceDocument{SourceName: "a.docx"}))

	slot.Replace(&ReferenceDocument{SourceName: "b.docx"})
	assert.Equal(t, "b.docx", slot.Get().SourceName)
}

func TestReferenceSlotEmptyText(t *testing.T) {
	slot := &ReferenceSlot{}
	assert.Empty(t, slot.Text())
	assert.Nil(t, slot.Get())
}

func TestValidItemType(t *testing.T) {
	assert.True(t, ValidItemType(ItemMultipleChoice))
	assert.True(t, ValidItemType(ItemMixed))
	assert.False(t, ValidItemType(ItemType("essay_battle")))
	assert.False(t, ValidItemType(ItemType("")))
}
