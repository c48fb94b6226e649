package datamanagement_test

import (
	"testing"

	"go-hris-console/internal/datamanagement"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentPaths(t *testing.T) {
	t.Run("null and blank are empty", func(t *testing.T) {
		links, ok := datamanagement.ParseDocumentPaths(nil)
		assert.True(t, ok)
		assert.Empty(t, links)

		links, ok = datamanagement.ParseDocumentPaths(strPtr("  "))
		assert.True(t, ok)
		assert.Empty(t, links)
	})

	t.Run("array of paths", func(t *testing.T) {
		links, ok := datamanagement.ParseDocumentPaths(strPtr(`["/uploads/7/contract.pdf"]`))
		assert.True(t, ok)
		assert.Equal(t, []datamanagement.DocumentLink{{Path: "/uploads/7/contract.pdf", FileName: "contract.pdf"}}, links)
	})

	t.Run("garbage is flagged", func(t *testing.T) {
		links, ok := datamanagement.ParseDocumentPaths(strPtr(`/uploads/7/contract.pdf`))
		assert.False(t, ok)
		assert.Empty(t, links)
	})
}

func TestEncodeDocumentPaths(t *testing.T) {
	got, err := datamanagement.EncodeDocumentPaths(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = datamanagement.EncodeDocumentPaths([]string{"/a.pdf", "/b.pdf"})
	assert.NoError(t, err)
	assert.Equal(t, `["/a.pdf","/b.pdf"]`, *got)

	links, ok := datamanagement.ParseDocumentPaths(got)
	assert.True(t, ok)
	assert.Len(t, links, 2)
}

func TestEmployeeStatusLabel(t *testing.T) {
	assert.Equal(t, "พ้นสภาพ", datamanagement.EmployeeStatusLabel("Terminated"))
	assert.Equal(t, "ไม่ใช้งาน", datamanagement.EmployeeStatusLabel("Inactive"))
	assert.Equal(t, "Probation", datamanagement.EmployeeStatusLabel("Probation"))
	assert.True(t, datamanagement.IsValidEmployeeStatus("On Leave"))
	assert.False(t, datamanagement.IsValidEmployeeStatus("on leave"))
}
