// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hay-kot/criterio"
)

// MessageBody validates a message body is non-empty after trimming whitespace.
func MessageBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// MessageBodyField returns a criterio validator for message bodies.
func MessageBodyField(field, body string) error {
	return criterio.Run(field, body, MessageBody)
}

// Subject validates a concrete publish subject or channel name: non-empty,
// no whitespace and no wildcard tokens.
func Subject(subject string) error {
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.IndexFunc(subject, unicode.IsSpace) >= 0 {
		return fmt.Errorf("subject must not contain whitespace")
	}
	if strings.ContainsAny(subject, "*>?[") {
		return fmt.Errorf("cannot publish to wildcard subject %q", subject)
	}
	if strings.HasPrefix(subject, ".") || strings.HasSuffix(subject, ".") || strings.Contains(subject, "..") {
		return fmt.Errorf("subject %q has an empty token", subject)
	}
	return nil
}

// SubjectField returns a criterio validator for publish subjects.
func SubjectField(field, subject string) error {
	return criterio.Run(field, subject, Subject)
}
