// Package validation turns raw generation output into sermon content.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/minbar-sermons-api/internal/models"
	"github.com/minbar-sermons-api/internal/schema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// fencePattern matches a whole response wrapped in a ``` block. A language
// tag counts only when the opening line ends after it, so a single-line
// fence such as ```true``` keeps its whole body.
var fencePattern = regexp.MustCompile("(?s)^```(?:[A-Za-z0-9_+-]*[ \\t]*\\r?\\n)?(.*?)\\r?\\n?```$")

// missingPattern extracts property names from "missing properties: 'a', 'b'"
var missingPattern = regexp.MustCompile(`'([^']+)'`)

// Normalizer validates responses against a compiled document schema
type Normalizer struct {
	schema *jsonschema.Schema
}

// NewNormalizer compiles the given document structure
func NewNormalizer(root *schema.Node) (*Normalizer, error) {
	raw, err := root.JSONSchema()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("sermon.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load sermon schema: %w", err)
	}
	compiled, err := compiler.Compile("sermon.json")
	if err != nil {
		return nil, fmt.Errorf("compile sermon schema: %w", err)
	}
	return &Normalizer{schema: compiled}, nil
}

// NewSermonNormalizer returns a normalizer for the sermon document
func NewSermonNormalizer() (*Normalizer, error) {
	return NewNormalizer(schema.Sermon(""))
}

// StripFence removes a surrounding code fence, if any, and trims whitespace
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// Normalize parses and validates a raw response. It returns a *ParseError
// when the text is not JSON and a *SchemaError when the shape is wrong.
func (n *Normalizer) Normalize(raw string) (models.SermonContent, error) {
	text := StripFence(raw)
	if text == "" {
		return models.SermonContent{}, &ParseError{Err: errors.New("empty response")}
	}

	var tree any
	if err := json.Unmarshal([]byte(text), &tree); err != nil {
		return models.SermonContent{}, &ParseError{Err: err}
	}

	if err := n.schema.Validate(tree); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return models.SermonContent{}, schemaError(verr)
		}
		return models.SermonContent{}, fmt.Errorf("validate response: %w", err)
	}

	var content models.SermonContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return models.SermonContent{}, &ParseError{Err: err}
	}
	if content.Khutbah1.Messages == nil {
		content.Khutbah1.Messages = []models.Message{}
	}
	return content, nil
}

func schemaError(verr *jsonschema.ValidationError) *SchemaError {
	var violations []Violation
	collectLeaves(verr, &violations)
	if len(violations) == 0 {
		violations = append(violations, Violation{Path: pointerToPath(verr.InstanceLocation), Reason: verr.Message})
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Path < violations[j].Path
	})
	return &SchemaError{
		Path:       violations[0].Path,
		Reason:     violations[0].Reason,
		Violations: violations,
	}
}

func collectLeaves(verr *jsonschema.ValidationError, out *[]Violation) {
	if len(verr.Causes) > 0 {
		for _, c := range verr.Causes {
			collectLeaves(c, out)
		}
		return
	}

	base := pointerToPath(verr.InstanceLocation)
	if strings.HasPrefix(verr.Message, "missing properties") {
		for _, m := range missingPattern.FindAllStringSubmatch(verr.Message, -1) {
			*out = append(*out, Violation{Path: joinPath(base, m[1]), Reason: "missing required field"})
		}
		return
	}
	*out = append(*out, Violation{Path: base, Reason: verr.Message})
}

// pointerToPath converts "/khutbah1/messages/0/message" to
// "khutbah1.messages[0].message"
func pointerToPath(pointer string) string {
	pointer = strings.TrimPrefix(strings.TrimPrefix(pointer, "#"), "/")
	if pointer == "" {
		return "$"
	}
	var sb strings.Builder
	for i, seg := range strings.Split(pointer, "/") {
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		if isIndex(seg) {
			sb.WriteString("[" + seg + "]")
			continue
		}
		if i > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

func joinPath(base, name string) string {
	if base == "$" {
		return name
	}
	return base + "." + name
}

func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
