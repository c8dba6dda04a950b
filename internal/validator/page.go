package validator

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Page holds everything the classifier needs from a fetched body.
type Page struct {
	MetaTags map[string]string
	Blank    bool
	Noindex  bool
}

// InspectPage reads and decodes a response body, extracts all meta tags, and
// checks for a robots/googlebot noindex directive. A read or decode error is
// returned to the caller; a body that reads fine but contains only whitespace
// is reported via Blank.
func InspectPage(r io.Reader, contentType string) (Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Page{}, fmt.Errorf("read body: %w", err)
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return Page{}, fmt.Errorf("decode body: %w", err)
		}
		decoded = data
	}

	if strings.TrimSpace(string(decoded)) == "" {
		return Page{Blank: true}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	page := Page{MetaTags: map[string]string{}}
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.AttrOr("name", ""))
		if name == "" {
			// Open Graph and similar tags use property instead of name.
			name = strings.TrimSpace(s.AttrOr("property", ""))
		}
		if name == "" {
			return
		}
		content := s.AttrOr("content", "")
		page.MetaTags[name] = content
		if (strings.EqualFold(name, "robots") || strings.EqualFold(name, "googlebot")) && ContainsNoindex(content) {
			page.Noindex = true
		}
	})
	return page, nil
}
