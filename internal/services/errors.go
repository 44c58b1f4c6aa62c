package services

// Relay failure taxonomy. Reply returns exactly one of these per failed
// call; the chat handler maps each variant to a status code, so the mapping
// stays exhaustive and testable.

type UpstreamTimeoutError struct{ Message string }

func (e *UpstreamTimeoutError) Error() string { return e.Message }

type UpstreamUnreachableError struct{ Message string }

func (e *UpstreamUnreachableError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type UpstreamStatusError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamStatusError) Error() string { return e.Message }

type BadResponseError struct{ Message string }

func (e *BadResponseError) Error() string { return e.Message }

type EmptyReplyError struct{ Message string }

func (e *EmptyReplyError) Error() string { return e.Message }
