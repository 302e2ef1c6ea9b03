package domain

import "fmt"

// MissingInputError reports a required input value that is absent or blank.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing %s", e.Field)
}

// InvalidReferenceError reports a product reference that does not resolve to an ASIN.
type InvalidReferenceError struct {
	Input string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid product reference: %q", e.Input)
}

// MissingCredentialError reports a required secret or setting absent from the configuration.
type MissingCredentialError struct {
	Key string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential %s", e.Key)
}

// ProductNotFoundError reports a catalog lookup that returned no item.
type ProductNotFoundError struct {
	ASIN   string
	Reason string
}

func (e *ProductNotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("product %s not found: %s", e.ASIN, e.Reason)
	}
	return fmt.Sprintf("product %s not found", e.ASIN)
}

// LookupTransportError reports a network, auth or protocol failure talking to the catalog.
type LookupTransportError struct {
	Err error
}

func (e *LookupTransportError) Error() string {
	return fmt.Sprintf("catalog lookup failed: %v", e.Err)
}

func (e *LookupTransportError) Unwrap() error { return e.Err }

// FileWriteError reports a failure creating the posts directory or writing the post.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("cannot write post %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// AnnouncementTransportError reports a failed Telegram call. It never aborts a run.
type AnnouncementTransportError struct {
	Err error
}

func (e *AnnouncementTransportError) Error() string {
	return fmt.Sprintf("announcement failed: %v", e.Err)
}

func (e *AnnouncementTransportError) Unwrap() error { return e.Err }
