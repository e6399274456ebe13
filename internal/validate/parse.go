package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// recovery names where in the model output the JSON document was found.
type recovery string

const (
	recoverAsIs  recovery = "as-is"
	recoverFence recovery = "code fence"
	recoverSpan  recovery = "embedded span"
)

type candidate struct {
	how  recovery
	text string
}

// parseJSON decodes the JSON document in content. Models sometimes wrap
// the document in a markdown fence or a sentence of prose, so the raw
// text, the first fenced block and the outermost bracketed span are
// tried in that order. The returned recovery says which one parsed.
func parseJSON(content string) (any, recovery, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, "", errors.New("empty output")
	}

	var tried []string
	var lastErr error
	for _, c := range candidates(content) {
		var doc any
		if err := json.Unmarshal([]byte(c.text), &doc); err != nil {
			tried = append(tried, string(c.how))
			lastErr = err
			continue
		}
		return doc, c.how, nil
	}
	return nil, "", fmt.Errorf("not valid JSON (tried %s): %w", strings.Join(tried, ", "), lastErr)
}

func candidates(content string) []candidate {
	out := []candidate{{how: recoverAsIs, text: content}}
	add := func(how recovery, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		for _, c := range out {
			if c.text == text {
				return
			}
		}
		out = append(out, candidate{how: how, text: text})
	}
	if body, ok := fencedBody(content); ok {
		add(recoverFence, body)
	}
	add(recoverSpan, outermostSpan(content))
	return out
}

// fencedBody returns the contents of the first ``` block with its language
// tag dropped. An unterminated block runs to the end of the text.
func fencedBody(s string) (string, bool) {
	open := strings.Index(s, "```")
	if open < 0 {
		return "", false
	}
	rest := s[open+3:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return "", false
	}
	rest = rest[nl+1:]
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

// outermostSpan returns the text from the first '{' or '[' to the last
// matching closer, or "" when there is none.
func outermostSpan(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return ""
	}
	return s[start : end+1]
}
