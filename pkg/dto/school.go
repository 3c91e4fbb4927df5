package dto

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

type School struct {
	ID         *string `json:"id,omitempty"`
	SchoolName string  `json:"schoolName"`
}

type SchoolEmailRule struct {
	ID        *string `json:"id,omitempty"`
	SchoolID  string  `json:"schoolId"`
	EmailRule string  `json:"emailRule"`
}

type Rule struct {
	Message  string `json:"message"`
	Required bool   `json:"required"`
	Pattern  string `json:"pattern,omitempty"`
	Min      *int   `json:"min,omitempty"`
	Max      *int   `json:"max,omitempty"`
	Len      *int   `json:"len,omitempty"`
}

type FormField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Rules       []Rule `json:"rules"`
	Placeholder string `json:"placeholder"`
}

type DynamicCourseForm struct {
	SchoolID string      `json:"schoolId"`
	Fields   []FormField `json:"fields"`
}

// Check applies r to value and returns false when value violates it.
// Length limits count runes. An empty optional value passes every rule.
func (r Rule) Check(value string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return !r.Required, nil
	}

	n := utf8.RuneCountInString(value)
	if r.Len != nil && n != *r.Len {
		return false, nil
	}
	if r.Min != nil && n < *r.Min {
		return false, nil
	}
	if r.Max != nil && n > *r.Max {
		return false, nil
	}

	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false, fmt.Errorf("invalid rule pattern %q: %w", r.Pattern, err)
		}
		if !re.MatchString(value) {
			return false, nil
		}
	}
	return true, nil
}

// Validate runs every field rule against values, keyed by field name, and
// returns the failed rule messages per field. A nil map means the input
// passes. Rules with a broken pattern report their compile error as the
// message.
func (f DynamicCourseForm) Validate(values map[string]string) map[string][]string {
	var failures map[string][]string
	for _, field := range f.Fields {
		for _, rule := range field.Rules {
			ok, err := rule.Check(values[field.Name])
			if ok {
				continue
			}
			msg := rule.Message
			if err != nil {
				msg = err.Error()
			} else if msg == "" {
				msg = fmt.Sprintf("%s is invalid", field.Label)
			}
			if failures == nil {
				failures = make(map[string][]string)
			}
			failures[field.Name] = append(failures[field.Name], msg)
		}
	}
	return failures
}
