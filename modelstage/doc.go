// Package modelstage builds pipeline stages whose work is done by a
// generative model.
//
// Every invocation runs four phases in order:
//
//  1. Variants builds the candidate prompt variants for the input.
//  2. Select picks exactly one of them (default: the first).
//  3. Request assembles the model request (default: a fresh UUID request id,
//     the stage's temperature and max tokens, and a promptVariantId
//     attribute when the variant has an id).
//  4. The client is called and Parse turns the response into the output.
//
// A concrete stage supplies only Variants and Parse; the other phases have
// defaults that can be replaced independently:
//
//	st, err := modelstage.New(modelstage.Config[Topic, Draft]{
//	    Name:     "topic-explainer",
//	    Client:   client,
//	    Variants: modelstage.SingleVariant(explainPrompt),
//	    Parse:    parseDraft,
//	    Params:   modelstage.Params{Temperature: util.Ptr(0.4)},
//	})
//
// Stages hold no per-call state. They are safe for concurrent use when the
// client is.
package modelstage
