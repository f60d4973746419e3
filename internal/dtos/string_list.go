package dtos

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string and always holds trimmed, non-empty entries.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = clean(arr)
		return nil
	}

	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a list or a comma-separated string")
	}
	if s == nil {
		*l = StringList{}
		return nil
	}
	*l = ParseStringList(*s)
	return nil
}

// OrEmpty returns the entries as a plain slice, never nil, so the list
// encodes as [] rather than null.
func (l StringList) OrEmpty() []string {
	if l == nil {
		return []string{}
	}
	return l
}

// ParseStringList splits a comma-separated form value.
func ParseStringList(s string) StringList {
	return clean(strings.Split(s, ","))
}

func clean(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
