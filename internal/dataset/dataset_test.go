package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest_Classification(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mime     string
		data     string
		expected string
		folder   string
	}{
		{
			name:     "Image by MIME",
			fileName: "campus.png",
			mime:     "image/png",
			data:     "pngdata",
			expected: TypeImage,
			folder:   "Media Assets",
		},
		{
			name:     "Document by extension",
			fileName: "handbook.pdf",
			mime:     "application/pdf",
			data:     "pdf",
			expected: TypeDocument,
			folder:   "Documents",
		},
		{
			name:     "Code by extension",
			fileName: "script.py",
			mime:     "text/x-python",
			data:     "print('hi')",
			expected: TypeCode,
			folder:   "Code Samples",
		},
		{
			name:     "Unknown extension",
			fileName: "data.bin",
			mime:     "",
			data:     "blob",
			expected: TypeUnknown,
			folder:   "General Files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Ingest(tt.fileName, tt.mime, []byte(tt.data), "admin@nemsu.edu.ph")
			assert.Equal(t, tt.expected, d.Type)
			assert.Equal(t, tt.folder, d.Folder)
			assert.Equal(t, int64(len(tt.data)), d.Size)
			assert.NotEmpty(t, d.ID)
			assert.Equal(t, "admin@nemsu.edu.ph", d.UploadedBy)
		})
	}
}

func TestIngest_FacultyCSVDetection(t *testing.T) {
	csv := "name,department,email\nJuan Dela Cruz,Engineering,jdc@nemsu.edu.ph\nMaria Santos,Education,ms@nemsu.edu.ph\n"

	d := Ingest("staff.csv", "text/csv", []byte(csv), "")

	assert.Equal(t, TypeFaculty, d.Type)
	assert.Equal(t, "Academic Data", d.Folder)
	assert.Equal(t, 0.95, d.Confidence)
	assert.Equal(t, []string{"name", "department", "email"}, d.Columns)
	assert.Equal(t, 2, d.RowCount)
}

func TestIngest_CourseCSVDetection(t *testing.T) {
	csv := "code,title,units\nCS101,Intro to Computing,3\n"

	d := Ingest("offerings.csv", "text/csv", []byte(csv), "")

	assert.Equal(t, TypeCourses, d.Type)
	assert.Equal(t, 1, d.RowCount)
}

func TestIngest_PlainSpreadsheetKeepsType(t *testing.T) {
	csv := "a,b,c\n1,2,3\n"

	d := Ingest("numbers.csv", "text/csv", []byte(csv), "")

	assert.Equal(t, TypeSpreadsheet, d.Type)
	assert.Equal(t, "Spreadsheets", d.Folder)
}

func TestIngest_ImagePreviewIsDataURI(t *testing.T) {
	d := Ingest("logo.png", "image/png", []byte{0x89, 0x50}, "")
	assert.True(t, strings.HasPrefix(d.Preview, "data:image/png;base64,"))
}

func TestIngest_TextPreviewTruncates(t *testing.T) {
	long := strings.Repeat("x", 900)
	d := Ingest("notes.txt", "text/plain", []byte(long), "")
	assert.Len(t, d.Preview, 500)

	short := Ingest("short.txt", "text/plain", []byte("brief"), "")
	assert.Equal(t, "brief", short.Preview)
}

func TestFoldersOf(t *testing.T) {
	folders := FoldersOf([]Dataset{
		{Folder: "Documents", Type: TypeDocument},
		{Folder: "Documents", Type: TypeDocument},
		{Folder: "Academic Data", Type: TypeFaculty},
		{Folder: "Academic Data", Type: TypeCourses},
	})

	require.Len(t, folders, 2)
	assert.Equal(t, "Documents", folders[0].Name)
	assert.Equal(t, 2, folders[0].Count)
	assert.Equal(t, []string{TypeDocument}, folders[0].Types)
	assert.Equal(t, 2, folders[1].Count)
	assert.ElementsMatch(t, []string{TypeFaculty, TypeCourses}, folders[1].Types)
}

func TestStore_AddListDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := Ingest("handbook.pdf", "application/pdf", []byte("pdf"), "admin@nemsu.edu.ph")
	second := Ingest("staff.csv", "text/csv", []byte("name,department,email\n"), "admin@nemsu.edu.ph")
	require.NoError(t, store.Add(ctx, first))
	require.NoError(t, store.Add(ctx, second))

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, datasets, 2)
	assert.Equal(t, second.ID, datasets[0].ID) // newest first
	assert.Equal(t, first.ID, datasets[1].ID)

	require.NoError(t, store.Delete(ctx, first.ID))
	datasets, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, second.ID, datasets[0].ID)

	assert.ErrorIs(t, store.Delete(ctx, first.ID), ErrNotFound)
}

func TestStore_EmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, datasets)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gabai_datasets.json"), []byte("{broken"), 0o644))
	datasets, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, datasets)

	// Uploads still work over a corrupt list.
	d := Ingest("recovery.txt", "text/plain", []byte("ok"), "")
	require.NoError(t, store.Add(ctx, d))
	datasets, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, datasets, 1)
}
