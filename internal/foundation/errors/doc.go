// Package errors provides the classified error primitives used across docdoc.
//
// Every stage of a conversion reports failures as a ClassifiedError carrying a
// category (which of the fatal error kinds occurred), a severity, the offending
// path or key as structured context, and the underlying cause. The cause chain
// is preserved so callers can still use errors.Is against package sentinels.
//
// Key features:
//   - ErrorCategory: the error kind (frontmatter, metadata, theme, render, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and "Caused by" chain presentation
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryTheme, "theme metadata not valid").
//		WithContext("path", themeDir).
//		WithContext("key", "metadata").
//		Build()
package errors
