package api

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// maxUploadBytes bounds accepted upload size. Batches are URL lists, not
// documents.
const maxUploadBytes = 4 << 20

// readUploadedURLs extracts a URL list from an uploaded file. Multipart
// requests must carry the file under the "file" field; otherwise the raw
// request body is read. CSV files contribute their "url" column (or the first
// column when no header names one); anything else is treated as one URL per
// line.
func readUploadedURLs(r *http.Request) ([]string, error) {
	reader, name, err := uploadBody(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close() //nolint:errcheck // read-only stream

	limited := io.LimitReader(reader, maxUploadBytes)
	if strings.EqualFold(filepath.Ext(name), ".csv") || strings.Contains(r.Header.Get("Content-Type"), "text/csv") {
		return readCSVColumn(limited)
	}
	return readLines(limited)
}

func uploadBody(r *http.Request) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return r.Body, "", nil
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", fmt.Errorf("parse upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.New("missing 'file' upload field")
	}
	return file, headerFilename(header), nil
}

func headerFilename(h *multipart.FileHeader) string {
	if h == nil {
		return ""
	}
	return h.Filename
}

func readCSVColumn(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}

	col := 0
	start := 0
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "url") {
			col = i
			start = 1
			break
		}
	}

	var out []string
	for _, row := range rows[start:] {
		if col < len(row) {
			if u := strings.TrimSpace(row[col]); u != "" {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return out, nil
}
