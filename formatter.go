package threadex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxFilenameLength is the maximum number of runes in a sanitized title.
const MaxFilenameLength = 100

// IndexFilename is the name of the manifest written after a bulk export.
const IndexFilename = "_index.md"

// dateLayout formats export dates as ISO calendar dates.
const dateLayout = "2006-01-02"

var (
	disallowedFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun           = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// SanitizeFilename turns a title into a safe file name stem.
// It strips < > : " / \ | ? *, replaces whitespace runs with a single
// underscore and truncates to MaxFilenameLength runes. An empty result
// becomes "untitled".
func SanitizeFilename(title string) string {
	s := disallowedFilenameChars.ReplaceAllString(title, "")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = TruncateRunes(s, MaxFilenameLength)
	if s == "" {
		return "untitled"
	}
	return s
}

// SingleFilename returns the file name for a single-thread export.
func SingleFilename(title string) string {
	return SanitizeFilename(title) + ".md"
}

// BulkFilename returns the file name for the n-th thread of a bulk export.
// Positions are 1-based and zero-padded to four digits.
func BulkFilename(n int, title string) string {
	return fmt.Sprintf("%04d_%s.md", n, SanitizeFilename(title))
}

// FormatMarkdown renders an exported thread. The output depends only on the
// arguments; date is reduced to its UTC calendar day.
func FormatMarkdown(title, url, content string, date time.Time) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n**URL:** ")
	b.WriteString(url)
	b.WriteString("\n**Export date:** ")
	b.WriteString(date.UTC().Format(dateLayout))
	b.WriteString("\n\n---\n\n")
	b.WriteString(content)
	b.WriteString("\n")
	return b.String()
}

// FormatIndex renders the manifest listing every exported thread as a
// numbered Markdown link, in entry order.
func FormatIndex(entries []IndexEntry, date time.Time) string {
	var b strings.Builder
	b.WriteString("# Thread index\n\n**Export date:** ")
	b.WriteString(date.UTC().Format(dateLayout))
	b.WriteString("\n**Threads:** ")
	b.WriteString(strconv.Itoa(len(entries)))
	b.WriteString("\n\n---\n\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, e.Title, e.Filename)
	}
	return b.String()
}
