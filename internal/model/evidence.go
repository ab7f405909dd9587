package model

import (
	"encoding/json"
	"net/url"
	"strings"
)

// EvidenceGroup is one retrieval query and the sources it returned, in retrieval order
type EvidenceGroup struct {
	Question string   `json:"question"`
	Sources  []Source `json:"sources"`
}

// Source is a retrieved snippet with an optional attribution URL
type Source struct {
	Text string  `json:"text"`
	URL  *string `json:"url"`
}

// UnmarshalJSON accepts both {"text","url"} objects and bare strings.
// A bare string is a snippet without attribution.
func (s *Source) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Source{Text: text}
		return nil
	}

	type plain Source
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Source(p)
	return nil
}

// Valid reports whether the source carries a usable attribution URL:
// non-null, not the literal "None", and not blank.
func (s Source) Valid() bool {
	if s.URL == nil {
		return false
	}
	u := strings.TrimSpace(*s.URL)
	return u != "" && u != "None"
}

// Link returns the trimmed URL of a valid source, or ""
func (s Source) Link() string {
	if !s.Valid() {
		return ""
	}
	return strings.TrimSpace(*s.URL)
}

// Host returns the host of the source URL for display, or ""
func (s Source) Host() string {
	link := s.Link()
	if link == "" {
		return ""
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// NewSource builds a source with an attribution URL
func NewSource(text, link string) Source {
	return Source{Text: text, URL: &link}
}
