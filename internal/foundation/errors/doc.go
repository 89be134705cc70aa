// Package errors provides the classified error type used across docnav.
//
// A ClassifiedError carries a category (what kind of failure), a severity and
// free-form context. The CLI and HTTP adapters turn categories into exit codes
// and status codes so callers never switch on message text.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryValidation, "nav item has no link").
//		WithContext("path", "2.1").
//		WithContext("text", item.Label()).
//		Build()
package errors
