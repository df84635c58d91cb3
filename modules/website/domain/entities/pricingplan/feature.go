package pricingplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type FeatureKind int

const (
	KindPlainText FeatureKind = iota
	KindLabeledValue
)

type Style string

const (
	StyleDefault   Style = ""
	StyleHighlight Style = "highlight"
	StyleMuted     Style = "muted"
	StyleIncluded  Style = "included"
	StyleExcluded  Style = "excluded"
)

func (s Style) IsValid() bool {
	switch s {
	case StyleDefault, StyleHighlight, StyleMuted, StyleIncluded, StyleExcluded:
		return true
	}
	return false
}

var ErrInvalidFeature = errors.New("invalid feature entry")

// FeatureEntry is one line of a plan's feature list: either plain text or a
// label/value pair such as "Storage: 50 GB". The zero value is an empty
// plain-text entry.
type FeatureEntry struct {
	kind  FeatureKind
	text  string
	label string
	value string
	style Style
}

func PlainText(text string) FeatureEntry {
	return FeatureEntry{kind: KindPlainText, text: text}
}

func LabeledValue(label, value string, style Style) FeatureEntry {
	return FeatureEntry{kind: KindLabeledValue, label: label, value: value, style: style}
}

func (f FeatureEntry) Kind() FeatureKind { return f.kind }
func (f FeatureEntry) Text() string      { return f.text }
func (f FeatureEntry) Label() string     { return f.label }
func (f FeatureEntry) Value() string     { return f.value }
func (f FeatureEntry) Style() Style      { return f.style }

// String renders the entry as a single line of text.
func (f FeatureEntry) String() string {
	if f.kind == KindLabeledValue {
		return f.label + ": " + f.value
	}
	return f.text
}

func (f FeatureEntry) Validate() error {
	switch f.kind {
	case KindPlainText:
		if strings.TrimSpace(f.text) == "" {
			return fmt.Errorf("%w: text must not be empty", ErrInvalidFeature)
		}
	case KindLabeledValue:
		if strings.TrimSpace(f.label) == "" {
			return fmt.Errorf("%w: label must not be empty", ErrInvalidFeature)
		}
		if !f.style.IsValid() {
			return fmt.Errorf("%w: unknown style %q", ErrInvalidFeature, f.style)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidFeature, f.kind)
	}
	return nil
}

type labeledJSON struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Style Style  `json:"style,omitempty"`
}

// MarshalJSON writes plain text as a JSON string and labeled values as an object.
func (f FeatureEntry) MarshalJSON() ([]byte, error) {
	if f.kind == KindLabeledValue {
		return json.Marshal(labeledJSON{Label: f.label, Value: f.value, Style: f.style})
	}
	return json.Marshal(f.text)
}

// UnmarshalJSON accepts a bare string or a {label, value, style} object.
// Older payloads name the style "type"; it is read as style.
func (f *FeatureEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidFeature)
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*f = PlainText(strings.TrimSpace(text))
	case '{':
		var obj struct {
			Label string `json:"label"`
			Value string `json:"value"`
			Style *Style `json:"style"`
			Type  *Style `json:"type"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		style := StyleDefault
		switch {
		case obj.Style != nil:
			style = *obj.Style
		case obj.Type != nil:
			style = *obj.Type
		}
		*f = LabeledValue(strings.TrimSpace(obj.Label), strings.TrimSpace(obj.Value), style)
	default:
		return fmt.Errorf("%w: must be a string or an object", ErrInvalidFeature)
	}
	return f.Validate()
}
