package messages

import "errors"

// ErrMalformedDocument indicates the whole ingest document could not be parsed.
// The request is rejected and nothing from it is persisted.
var ErrMalformedDocument = errors.New("malformed document")

// ErrDecode indicates one message blob does not fit the expected grammar.
// The message is skipped; the rest of the batch continues.
var ErrDecode = errors.New("message decode failed")
