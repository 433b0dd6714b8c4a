package modelstage

import (
	"maps"

	"github.com/kbukum/contentgen/errors"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/util"
)

// AttrPromptVariantID is the request attribute naming the selected variant.
const AttrPromptVariantID = "promptVariantId"

// PromptVariant is one candidate instruction pair. ID may be empty.
type PromptVariant struct {
	ID           string
	SystemPrompt string
	UserPrompt   string
}

// VariantBuilder produces the ordered candidate variants for an input.
type VariantBuilder[I any] func(in I) ([]PromptVariant, error)

// VariantSelector picks one variant out of a non-empty candidate list. It
// must return a member of the list.
type VariantSelector[I any] func(in I, variants []PromptVariant) (PromptVariant, error)

// RequestBuilder assembles the model request for the selected variant.
type RequestBuilder[I any] func(in I, v PromptVariant) (llm.Request, error)

// ResponseParser turns a model response into the stage output.
type ResponseParser[I, O any] func(in I, resp llm.Response) (O, error)

// Params are the sampling settings a stage sends with every request.
// Nil fields are left to the backend.
type Params struct {
	Temperature *float64
	MaxTokens   *int
}

// SingleVariant returns a builder yielding exactly the variant from build.
func SingleVariant[I any](build func(in I) PromptVariant) VariantBuilder[I] {
	return func(in I) ([]PromptVariant, error) {
		return []PromptVariant{build(in)}, nil
	}
}

// SelectFirst returns a selector picking the first candidate.
func SelectFirst[I any]() VariantSelector[I] {
	return func(_ I, variants []PromptVariant) (PromptVariant, error) {
		if len(variants) == 0 {
			return PromptVariant{}, errors.EmptyVariantSet("")
		}
		return variants[0], nil
	}
}

// SelectByID returns a selector picking the candidate with the given id.
// An id matching no candidate is VARIANT_NOT_IN_SET.
func SelectByID[I any](id string) VariantSelector[I] {
	return func(_ I, variants []PromptVariant) (PromptVariant, error) {
		if len(variants) == 0 {
			return PromptVariant{}, errors.EmptyVariantSet("")
		}
		for _, v := range variants {
			if v.ID == id {
				return v, nil
			}
		}
		return PromptVariant{}, errors.VariantNotInSet("", id)
	}
}

// DefaultRequest returns the request builder used when a stage sets none.
func DefaultRequest[I any](p Params) RequestBuilder[I] {
	return func(_ I, v PromptVariant) (llm.Request, error) {
		req := llm.Request{
			RequestID:    util.NewID(),
			SystemPrompt: v.SystemPrompt,
			UserPrompt:   v.UserPrompt,
			Temperature:  p.Temperature,
			MaxTokens:    p.MaxTokens,
		}
		if v.ID != "" {
			req.Attributes = map[string]any{AttrPromptVariantID: v.ID}
		}
		return req, nil
	}
}

// WithAttributes extends base with stage-specific attributes. Keys set by
// extra win over those set by base.
func WithAttributes[I any](base RequestBuilder[I], extra func(in I) map[string]any) RequestBuilder[I] {
	return func(in I, v PromptVariant) (llm.Request, error) {
		req, err := base(in, v)
		if err != nil {
			return req, err
		}
		add := extra(in)
		if len(add) == 0 {
			return req, nil
		}
		attrs := make(map[string]any, len(req.Attributes)+len(add))
		maps.Copy(attrs, req.Attributes)
		maps.Copy(attrs, add)
		req.Attributes = attrs
		return req, nil
	}
}
