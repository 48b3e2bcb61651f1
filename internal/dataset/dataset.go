// Package dataset manages the admin knowledge-base uploads. Every upload is
// classified by content, filed into a virtual folder and persisted as one
// JSON document under the gabai_datasets storage key, mirroring the chat
// store's whole-list persistence model.
package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabai/gabai-backend/internal/chat/attachment"
)

// Dataset types, ordered from domain-specific to generic.
const (
	TypeFaculty     = "faculty"
	TypeCourses     = "courses"
	TypeStudents    = "students"
	TypeDocument    = "document"
	TypeImage       = "image"
	TypeSpreadsheet = "spreadsheet"
	TypeCode        = "code"
	TypeUnknown     = "unknown"
)

const previewLimit = 500

// Dataset is one uploaded knowledge-base file plus what was detected
// about it. Preview carries a data URI for images and a text excerpt for
// documents and code.
type Dataset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Folder     string    `json:"folder"`
	Size       int64     `json:"size"`
	FileType   string    `json:"fileType"`
	Preview    string    `json:"preview,omitempty"`
	RowCount   int       `json:"rowCount,omitempty"`
	Columns    []string  `json:"columns,omitempty"`
	Confidence float64   `json:"confidence"`
	UploadDate time.Time `json:"uploadDate"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
}

// Folder summarizes one virtual knowledge-base folder.
type Folder struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Types []string `json:"types"`
}

// Ingest classifies an upload and builds its Dataset record. Tabular files
// are sniffed for faculty/course/student content; images get a data-URI
// preview through the attachment encoder, text files a short excerpt.
func Ingest(name, mime string, data []byte, uploadedBy string) Dataset {
	if mime == "" {
		mime = "application/octet-stream"
	}

	kind := detectKind(name, mime)
	confidence := 0.7

	d := Dataset{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       kind,
		Size:       int64(len(data)),
		FileType:   mime,
		Confidence: confidence,
		UploadDate: time.Now(),
		UploadedBy: uploadedBy,
	}

	switch kind {
	case TypeSpreadsheet:
		if columns, rows := sniffTable(name, data); len(columns) > 0 {
			d.Columns = columns
			d.RowCount = rows
			d.Type, d.Confidence = detectTableType(columns)
		}
	case TypeImage:
		if att, err := attachment.Encode(attachment.File{Name: name, MIME: mime, Reader: bytes.NewReader(data)}); err == nil {
			d.Preview = att.URL
		}
	case TypeDocument, TypeCode:
		d.Preview = excerpt(data)
	}

	d.Folder = folderFor(d.Type)
	return d
}

func detectKind(name, mime string) string {
	if strings.HasPrefix(mime, "image/") {
		return TypeImage
	}
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".") {
	case "csv", "xlsx", "xls", "json":
		return TypeSpreadsheet
	case "go", "js", "ts", "jsx", "tsx", "py", "java":
		return TypeCode
	case "pdf", "doc", "docx", "txt", "md":
		return TypeDocument
	}
	return TypeUnknown
}

// sniffTable extracts the column headers and row count from CSV or JSON
// array payloads. Anything unparseable yields no columns.
func sniffTable(name string, data []byte) ([]string, int) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 {
			return nil, 0
		}
		return records[0], len(records) - 1
	case ".json":
		var rows []map[string]json.RawMessage
		if err := json.Unmarshal(data, &rows); err != nil || len(rows) == 0 {
			return nil, 0
		}
		columns := make([]string, 0, len(rows[0]))
		for col := range rows[0] {
			columns = append(columns, col)
		}
		return columns, len(rows)
	}
	return nil, 0
}

// detectTableType guesses the campus entity a tabular upload describes from
// its column names.
func detectTableType(columns []string) (string, float64) {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = strings.ToLower(c)
	}
	hasAny := func(substrings ...string) bool {
		for _, n := range names {
			for _, sub := range substrings {
				if strings.Contains(n, sub) {
					return true
				}
			}
		}
		return false
	}
	has := func(exact string) bool {
		for _, n := range names {
			if n == exact {
				return true
			}
		}
		return false
	}

	if hasAny("faculty", "professor", "instructor") || (has("name") && has("department") && has("email")) {
		return TypeFaculty, 0.95
	}
	if hasAny("course", "subject") || (has("code") && has("title")) {
		return TypeCourses, 0.9
	}
	if hasAny("student") || (has("name") && has("year")) {
		return TypeStudents, 0.85
	}
	return TypeSpreadsheet, 0.7
}

func folderFor(kind string) string {
	switch kind {
	case TypeFaculty, TypeCourses, TypeStudents:
		return "Academic Data"
	case TypeImage:
		return "Media Assets"
	case TypeDocument:
		return "Documents"
	case TypeSpreadsheet:
		return "Spreadsheets"
	case TypeCode:
		return "Code Samples"
	default:
		return "General Files"
	}
}

func excerpt(data []byte) string {
	runes := []rune(string(data))
	if len(runes) <= previewLimit {
		return string(runes)
	}
	return string(runes[:previewLimit])
}

// FoldersOf summarizes the virtual folder structure of a dataset list.
func FoldersOf(datasets []Dataset) []Folder {
	index := make(map[string]int)
	var folders []Folder
	for _, d := range datasets {
		i, ok := index[d.Folder]
		if !ok {
			i = len(folders)
			index[d.Folder] = i
			folders = append(folders, Folder{Name: d.Folder})
		}
		folders[i].Count++
		if !containsString(folders[i].Types, d.Type) {
			folders[i].Types = append(folders[i].Types, d.Type)
		}
	}
	return folders
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
