package deck

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field that accepts JSON numbers and numeric-looking
// strings ("24", "24px", " 1.5em"). Anything else decodes as an invalid value
// without failing the surrounding document.
type Number struct {
	value float64
	valid bool
}

// NewNumber returns a valid Number holding f.
func NewNumber(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{value: f, valid: true}
}

// Float returns the value and whether it is a finite number.
func (n Number) Float() (float64, bool) {
	return n.value, n.valid
}

// Valid reports whether the number was present and numeric.
func (n Number) Valid() bool {
	return n.valid
}

// Or returns the value, or def when invalid.
func (n Number) Or(def float64) float64 {
	if !n.valid {
		return def
	}
	return n.value
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if f, ok := ParseLeadingFloat(s); ok {
			*n = NewNumber(f)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if f, err := strconv.ParseFloat(string(data), 64); err == nil {
			*n = NewNumber(f)
		}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

// ParseLeadingFloat parses the longest numeric prefix of s after leading
// whitespace, so "24px" yields 24 and "px" yields false.
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text is a string field that also accepts numbers and booleans. Objects
// yield the first of their "text", "label", "value", "content" or "name"
// keys that holds a scalar; other shapes decode as empty.
type Text string

// String returns the text.
func (t Text) String() string {
	return string(t)
}

// Trimmed returns the text without surrounding whitespace.
func (t Text) Trimmed() string {
	return strings.TrimSpace(string(t))
}

// IsBlank reports whether the text is empty after trimming.
func (t Text) IsBlank() bool {
	return t.Trimmed() == ""
}

var textObjectKeys = []string{"text", "label", "value", "content", "name"}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(s)
		}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		for _, key := range textObjectKeys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var inner Text
			_ = inner.UnmarshalJSON(raw)
			if inner != "" {
				*t = inner
				return nil
			}
		}
	case '[':
	case 'n':
	default:
		// numbers and booleans keep their literal form
		*t = Text(data)
	}
	return nil
}

// Bool accepts JSON booleans, "true"/"false" strings and 0/1 numbers.
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	*b = false
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		*b = true
	}
	return nil
}

// ListItem is a list entry given either as a bare scalar or as an object
// with a text and an optional checked flag.
type ListItem struct {
	Text    Text
	Checked Bool
}

func (li *ListItem) UnmarshalJSON(data []byte) error {
	*li = ListItem{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Checked   Bool `json:"checked"`
			Completed Bool `json:"completed"`
			Done      Bool `json:"done"`
		}
		_ = json.Unmarshal(data, &obj)
		li.Checked = obj.Checked || obj.Completed || obj.Done
	}
	return li.Text.UnmarshalJSON(data)
}

// Texts decodes a list of scalars, tolerating a single scalar in place of
// the list.
type Texts []Text

func (ts *Texts) UnmarshalJSON(data []byte) error {
	*ts = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}
	if data[0] != '[' {
		var t Text
		_ = t.UnmarshalJSON(data)
		*ts = Texts{t}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(Texts, len(raw))
	for i, r := range raw {
		_ = out[i].UnmarshalJSON(r)
	}
	*ts = out
	return nil
}

// Numbers decodes a list of numbers, tolerating a single number in place of
// the list. Entries that are objects yield their "value" or "y" key.
type Numbers []Number

func (ns *Numbers) UnmarshalJSON(data []byte) error {
	*ns = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}
	if data[0] != '[' {
		var n Number
		_ = n.UnmarshalJSON(data)
		*ns = Numbers{n}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(Numbers, len(raw))
	for i, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) > 0 && r[0] == '{' {
			var obj struct {
				Value Number `json:"value"`
				Y     Number `json:"y"`
			}
			_ = json.Unmarshal(r, &obj)
			if obj.Value.Valid() {
				out[i] = obj.Value
			} else {
				out[i] = obj.Y
			}
			continue
		}
		_ = out[i].UnmarshalJSON(r)
	}
	*ns = out
	return nil
}
