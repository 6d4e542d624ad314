// Package efu reads and writes Everything file lists (EFU).
//
// An EFU file is a CSV document whose header names the columns
// Filename, Size, Date Modified, Date Created, and Attributes. Only the
// Filename column is populated here; Everything indexes the listed paths
// and fills in the rest itself.
package efu

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/renameio/v2"
)

// Header is the canonical EFU column header.
const Header = "Filename,Size,Date Modified,Date Created,Attributes"

// ErrNoEntries is returned when a write is attempted with no paths.
var ErrNoEntries = errors.New("no paths to export")

// Write streams an EFU document listing the given paths.
func Write(w io.Writer, paths []string) error {
	if len(paths) == 0 {
		return ErrNoEntries
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := bw.WriteString(quoteField(path) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes an EFU document to path atomically: a failed write never
// leaves a partial file behind.
func WriteFile(path string, paths []string) error {
	if len(paths) == 0 {
		return ErrNoEntries
	}
	var buf bytes.Buffer
	if err := Write(&buf, paths); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write efu: %w", err)
	}
	return nil
}

// Read parses an EFU document and returns the listed filenames. The header
// line is required; rows carry at least a quoted or bare filename field.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("empty efu document")
	}
	header := strings.TrimSpace(scanner.Text())
	if !strings.EqualFold(header, Header) {
		return nil, fmt.Errorf("unexpected efu header %q", header)
	}

	var paths []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, parseFilenameField(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// quoteField wraps a value in double quotes, doubling inner quotes per CSV.
func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// parseFilenameField extracts the first CSV field from a row.
func parseFilenameField(line string) string {
	if !strings.HasPrefix(line, `"`) {
		if idx := strings.IndexByte(line, ','); idx >= 0 {
			return line[:idx]
		}
		return line
	}

	var b strings.Builder
	rest := line[1:]
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if ch == '"' {
			if i+1 < len(rest) && rest[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			break
		}
		b.WriteByte(ch)
	}
	return b.String()
}
