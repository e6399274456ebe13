package validate

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind classifies a validation failure.
type Kind string

const (
	// Malformed means the text was not parseable JSON.
	Malformed Kind = "malformed"
	// SchemaMismatch means the JSON did not satisfy the contract.
	SchemaMismatch Kind = "schema_mismatch"
)

// ErrValidation matches any *ValidationError with errors.Is.
var ErrValidation = errors.New("response validation failed")

// ValidationError is returned when a service response cannot be turned into
// a typed result. No partial result accompanies it.
type ValidationError struct {
	Kind Kind
	// Field is the offending path, e.g. "badIngredients[0].name". Empty for
	// Malformed and for failures at the document root.
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Kind == Malformed:
		return fmt.Sprintf("malformed response: %s", e.Detail)
	case e.Field == "":
		return fmt.Sprintf("schema mismatch at document root: %s", e.Detail)
	default:
		return fmt.Sprintf("schema mismatch at %s: %s", e.Field, e.Detail)
	}
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func malformed(err error) *ValidationError {
	return &ValidationError{Kind: Malformed, Detail: err.Error()}
}

func mismatch(field, detail string) *ValidationError {
	return &ValidationError{Kind: SchemaMismatch, Field: field, Detail: detail}
}

// fromSchemaError reduces a jsonschema error tree to one field. Leaves are
// collected and the lexically first path wins so the result is stable.
func fromSchemaError(err error) *ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return mismatch("", err.Error())
	}

	type leaf struct{ field, message string }
	var leaves []leaf
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		for _, f := range leafFields(e) {
			leaves = append(leaves, leaf{field: f, message: e.Message})
		}
	}
	walk(ve)

	if len(leaves) == 0 {
		return mismatch(instancePath(ve.InstanceLocation), ve.Message)
	}
	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].field < leaves[j].field })
	return mismatch(leaves[0].field, leaves[0].message)
}

// leafFields returns the field paths one leaf error points at. Required and
// additionalProperties failures name child properties in the message.
func leafFields(e *jsonschema.ValidationError) []string {
	base := instancePath(e.InstanceLocation)
	keyword := e.KeywordLocation[strings.LastIndex(e.KeywordLocation, "/")+1:]

	var names []string
	switch keyword {
	case "required":
		names = quotedNames(strings.TrimPrefix(e.Message, "missing properties: "))
	case "additionalProperties":
		msg := strings.TrimPrefix(e.Message, "additionalProperties ")
		names = quotedNames(strings.TrimSuffix(msg, " not allowed"))
	}
	if len(names) == 0 {
		return []string{base}
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if base == "" {
			out = append(out, n)
		} else {
			out = append(out, base+"."+n)
		}
	}
	return out
}

// quotedNames splits "'a', 'b'" into [a b].
func quotedNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ", ") {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && part[0] == '\'' && part[len(part)-1] == '\'' {
			out = append(out, strings.ReplaceAll(part[1:len(part)-1], `\'`, `'`))
		}
	}
	return out
}

// instancePath turns a JSON pointer into dotted form: /a/0/b -> a[0].b
func instancePath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b strings.Builder
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if unescaped, err := url.PathUnescape(tok); err == nil {
			tok = unescaped
		}
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(tok); err == nil {
			b.WriteString("[" + tok + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}
