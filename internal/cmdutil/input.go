// Package cmdutil provides shared helpers for command argument and
// input handling.
package cmdutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// courseURLPattern matches the course segment of a Canvas web URL,
// for example https://canvas.example.edu/courses/101/assignments/7.
var courseURLPattern = regexp.MustCompile(`/courses/(\d+)`)

// assignmentURLPattern matches the assignment segment of a Canvas web URL.
var assignmentURLPattern = regexp.MustCompile(`/assignments/(\d+)`)

// ParseCourseRef resolves a course reference to a numeric ID. It
// accepts a bare ID ("101") or a Canvas web URL pasted from the
// browser.
func ParseCourseRef(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("course is required")
	}

	if looksLikeURL(trimmed) {
		m := courseURLPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return 0, fmt.Errorf("no course ID found in URL %q", trimmed)
		}
		trimmed = m[1]
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid course ID %q", input)
	}
	return id, nil
}

// ParseAssignmentRef resolves an assignment reference to a numeric ID,
// accepting a bare ID or a Canvas web URL.
func ParseAssignmentRef(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("assignment is required")
	}

	if looksLikeURL(trimmed) {
		m := assignmentURLPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return 0, fmt.Errorf("no assignment ID found in URL %q", trimmed)
		}
		trimmed = m[1]
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid assignment ID %q", input)
	}
	return id, nil
}

// ReadInputSource reads input from a file path or stdin when path is "-".
func ReadInputSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file path is required")
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveValueInput resolves a flag value with @file and - (stdin)
// support: "@path" reads the file, "-" reads stdin, anything else is
// returned verbatim.
func ResolveValueInput(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "-" {
		return ReadInputSource("-")
	}
	if strings.HasPrefix(trimmed, "@") {
		return ReadInputSource(trimmed[1:])
	}
	return raw, nil
}

// Confirm prompts the user on w and reads a yes/no answer from r.
// Only "y" and "yes" (case-insensitive) are treated as consent.
func Confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	_, _ = fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// looksLikeURL reports whether the value appears to be a URL rather
// than a raw numeric ID. Canvas IDs are digits only, so any scheme
// prefix or path separator marks a URL.
func looksLikeURL(value string) bool {
	lower := strings.ToLower(value)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}
	return strings.Contains(value, "/")
}
