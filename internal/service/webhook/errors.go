package webhook

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrDuplicateEvent   = errors.New("webhook event already processed")
)
