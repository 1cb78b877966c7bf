package extract

import "errors"

// ErrMissingAPIKey indicates the generative-model credential is not
// configured. It is a configuration failure, distinct from a content
// extraction failure, and must surface as such to the user.
var ErrMissingAPIKey = errors.New("generative model API key is not configured")

// ErrExtraction indicates the upstream call failed or returned no usable
// result. The operation may be retried by the user; no automatic retry is
// performed.
var ErrExtraction = errors.New("extraction failed")

// ErrUnsupportedPayload indicates the uploaded document is not a supported
// type. Caught locally, before any upstream call.
var ErrUnsupportedPayload = errors.New("unsupported document type")
