// Package prompt fills blog prompt templates with user-supplied values.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

// Names of the placeholders a blog template may reference.
const (
	KeywordPlaceholder = "keyword"
	TopicPlaceholder   = "topic"
)

//go:embed default.tmpl
var DefaultTemplate string

// ErrUnknownPlaceholder is wrapped by a FormatError when the template names a
// placeholder that was not supplied.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// FormatError reports a malformed template or a placeholder that cannot be
// filled. Offset is the byte offset of the offending brace.
type FormatError struct {
	Offset int
	Field  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("template format error at offset %d: %s {%s}", e.Offset, e.Reason, e.Field)
	}
	return fmt.Sprintf("template format error at offset %d: %s", e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// FillBlog fills tmpl with the keyword and topic placeholders.
func FillBlog(tmpl, keyword, topic string) (string, error) {
	return Fill(tmpl, map[string]string{
		KeywordPlaceholder: keyword,
		TopicPlaceholder:   topic,
	})
}

// Fill replaces every {name} in tmpl with values[name]. "{{" and "}}" produce
// literal braces. Substituted values are inserted verbatim and never rescanned.
func Fill(tmpl string, values map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))
	err := scan(tmpl, func(lit string) {
		b.WriteString(lit)
	}, func(offset int, name string) error {
		v, ok := values[name]
		if !ok {
			return &FormatError{Offset: offset, Field: name, Reason: "no value supplied for placeholder", Err: ErrUnknownPlaceholder}
		}
		b.WriteString(v)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Placeholders returns the distinct placeholder names in tmpl in order of
// first appearance.
func Placeholders(tmpl string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	err := scan(tmpl, func(string) {}, func(_ int, name string) error {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// scan walks tmpl, passing literal runs to lit and placeholder names to field.
func scan(tmpl string, lit func(string), field func(offset int, name string) error) error {
	start := 0
	for i := 0; i < len(tmpl); i++ {
		switch tmpl[i] {
		case '{':
			lit(tmpl[start:i])
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit("{")
				i++
				start = i + 1
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return &FormatError{Offset: i, Reason: "single '{' encountered"}
			}
			name, err := checkField(i, tmpl[i+1:i+1+end])
			if err != nil {
				return err
			}
			if err := field(i, name); err != nil {
				return err
			}
			i += end + 1
			start = i + 1
		case '}':
			lit(tmpl[start:i])
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit("}")
				i++
				start = i + 1
				continue
			}
			return &FormatError{Offset: i, Reason: "single '}' encountered"}
		}
	}
	lit(tmpl[start:])
	return nil
}

// checkField validates a placeholder body and returns the bare name. An empty
// format spec ("{topic:}") and the !s conversion leave the value unchanged and
// are accepted.
func checkField(offset int, field string) (string, error) {
	if strings.ContainsRune(field, '{') {
		return "", &FormatError{Offset: offset, Field: field, Reason: "nested brace in placeholder"}
	}
	name := field
	if i := strings.IndexByte(name, ':'); i >= 0 {
		if name[i+1:] != "" {
			return "", &FormatError{Offset: offset, Field: field, Reason: "format specs are not supported in placeholder"}
		}
		name = name[:i]
	}
	name = strings.TrimSuffix(name, "!s")
	switch {
	case strings.ContainsRune(name, '!'):
		return "", &FormatError{Offset: offset, Field: field, Reason: "conversions other than !s are not supported in placeholder"}
	case name == "":
		return "", &FormatError{Offset: offset, Reason: "positional placeholder {} is not supported"}
	case strings.ContainsAny(name, ".["):
		return "", &FormatError{Offset: offset, Field: field, Reason: "attribute or index access is not supported in placeholder"}
	}
	return name, nil
}
