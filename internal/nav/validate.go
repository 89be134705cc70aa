package nav

import (
	stderrors "errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ProblemCode identifies a structural defect of a tree.
type ProblemCode string

const (
	ProblemNilItem       ProblemCode = "nil_item"
	ProblemEmptyText     ProblemCode = "empty_text"
	ProblemEmptyLink     ProblemCode = "empty_link"
	ProblemRelativeLink  ProblemCode = "relative_link"
	ProblemEmptyGroup    ProblemCode = "empty_group"
	ProblemDuplicateLink ProblemCode = "duplicate_link"
	ProblemUnknownItem   ProblemCode = "unknown_item"
)

// Problem is one finding of Validate.
type Problem struct {
	Position string
	Text     string
	Code     ProblemCode
	Message  string
	Severity errors.ErrorSeverity
}

func (p Problem) Error() string {
	if p.Text == "" {
		return fmt.Sprintf("item %s: %s", p.Position, p.Message)
	}
	return fmt.Sprintf("item %s (%q): %s", p.Position, p.Text, p.Message)
}

// Report collects every problem found in a tree.
type Report struct {
	Problems []Problem
}

// Errors returns the problems that make the tree unusable.
func (r *Report) Errors() []Problem { return r.filter(true) }

// Warnings returns the problems that do not block rendering.
func (r *Report) Warnings() []Problem { return r.filter(false) }

func (r *Report) filter(errs bool) []Problem {
	var out []Problem
	for _, p := range r.Problems {
		if (p.Severity == errors.SeverityWarning) != errs {
			out = append(out, p)
		}
	}
	return out
}

// Valid reports whether the tree has no error-severity problems.
func (r *Report) Valid() bool { return len(r.Errors()) == 0 }

// Err returns a classified validation error joining every error-severity
// problem, or nil when the tree is valid.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, p := range errs {
		joined[i] = p
	}
	return errors.ValidationError("navigation tree is invalid").
		WithCause(stderrors.Join(joined...)).
		WithContext("problems", len(errs)).
		Build()
}

// Validate checks m against the structural rules every host relies on:
// labels are non-empty, leaves carry an absolute link, groups have at least
// one child. Repeated links are reported as warnings.
func Validate(m Menu) *Report {
	r := &Report{}
	seen := make(map[string]string)
	add := func(v Visit, text string, code ProblemCode, sev errors.ErrorSeverity, msg string) {
		r.Problems = append(r.Problems, Problem{Position: v.Position(), Text: text, Code: code, Message: msg, Severity: sev})
	}

	_ = Walk(m, func(v Visit) error {
		if v.Item == nil {
			add(v, "", ProblemNilItem, errors.SeverityError, "item is nil")
			return nil
		}
		switch v.Item.(type) {
		case Link, Group:
		default:
			add(v, "", ProblemUnknownItem, errors.SeverityError, fmt.Sprintf("unsupported item type %T", v.Item))
			return nil
		}
		text := v.Item.Label()
		if strings.TrimSpace(text) == "" {
			add(v, text, ProblemEmptyText, errors.SeverityError, "text is empty")
		}
		switch it := v.Item.(type) {
		case Link:
			switch {
			case strings.TrimSpace(it.Link) == "":
				add(v, text, ProblemEmptyLink, errors.SeverityError, "link is empty")
			case !strings.HasPrefix(it.Link, "/"):
				add(v, text, ProblemRelativeLink, errors.SeverityError, fmt.Sprintf("link %q must start with /", it.Link))
			default:
				if prev, dup := seen[it.Link]; dup {
					add(v, text, ProblemDuplicateLink, errors.SeverityWarning, fmt.Sprintf("link %q already used by item %s", it.Link, prev))
				} else {
					seen[it.Link] = v.Position()
				}
			}
		case Group:
			if len(it.Items) == 0 {
				add(v, text, ProblemEmptyGroup, errors.SeverityError, "group has no items")
			}
		}
		return nil
	})
	return r
}
