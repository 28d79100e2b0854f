package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKind_Valid(t *testing.T) {
	assert.True(t, KindFolder.Valid())
	assert.True(t, KindPlainFile.Valid())
	assert.True(t, KindImageFile.Valid())
	assert.False(t, FileKind("").Valid())
	assert.False(t, FileKind("directory").Valid())
}

func TestFile_Public_WithholdsContentRef(t *testing.T) {
	f := &File{
		ID:         "f1",
		OwnerID:    "u1",
		Name:       "report.txt",
		Kind:       KindPlainFile,
		ParentID:   RootParentID,
		IsPublic:   false,
		ContentRef: "/tmp/files_manager/abc",
		Seq:        7,
	}

	b, err := json.Marshal(f.Public())
	require.NoError(t, err)

	assert.NotContains(t, string(b), "abc")
	assert.NotContains(t, string(b), "contentRef")
	assert.NotContains(t, string(b), "localPath")
	assert.NotContains(t, string(b), `"7"`)
}

func TestFile_Public_RootParentRendersAsZero(t *testing.T) {
	f := &File{ID: "f1", OwnerID: "u1", Name: "docs", Kind: KindFolder, ParentID: RootParentID}

	b, err := json.Marshal(f.Public())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"parentId":0`)
}

func TestFile_Public_RealParentKeepsIdentifier(t *testing.T) {
	f := &File{ID: "f2", OwnerID: "u1", Name: "report.txt", Kind: KindPlainFile, ParentID: "5f1e7d3c-0000-0000-0000-000000000001"}

	p := f.Public()
	assert.Equal(t, "5f1e7d3c-0000-0000-0000-000000000001", p.ParentID)
}
