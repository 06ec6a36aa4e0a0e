// Package pathmap computes output locations for source documents and rewrites
// site-rooted links between documents with the same rule.
package pathmap

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	SourceExt = ".md"
	OutputExt = ".html"
)

// Segments splits p into its normal components. Root, volume, empty, "." and
// ".." components are dropped. Both '/' and the OS separator split.
func Segments(p string) []string {
	p = p[len(filepath.VolumeName(p)):]
	fields := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})
	out := fields[:0]
	for _, f := range fields {
		if f == "." || f == ".." {
			continue
		}
		out = append(out, f)
	}
	return out
}

// SwapExtension replaces a trailing ".md" on the last segment with ".html".
// Earlier segments are never touched, and segments without the suffix are
// returned as is.
func SwapExtension(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}
	last := segments[len(segments)-1]
	if base, ok := strings.CutSuffix(last, SourceExt); ok && base != "" {
		out := make([]string, len(segments))
		copy(out, segments)
		out[len(out)-1] = base + OutputExt
		return out
	}
	return segments
}

// mapSegments is the shared core: drop the first segment when asked, then
// swap the extension of what is left.
func mapSegments(p string, skipFirst bool) []string {
	segs := Segments(p)
	if skipFirst {
		if len(segs) <= 1 {
			return nil
		}
		segs = segs[1:]
	}
	return SwapExtension(segs)
}

// MapDestination returns where the document at source is written below root.
//
// MapDestination("a/b/c.md", "out", true) == "out/b/c.html".
func MapDestination(source, root string, skipFirst bool) string {
	segs := mapSegments(source, skipFirst)
	return filepath.Join(append([]string{root}, segs...)...)
}

// RewriteLink maps a site-rooted link to a Markdown document onto the
// generated HTML page, with the first segment dropped. Relative, fragment,
// protocol-relative and external links, and links to anything other than a
// ".md" file, are returned unchanged. Query and fragment suffixes are kept.
func RewriteLink(dest string) string {
	if !strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "//") {
		return dest
	}

	target, suffix := dest, ""
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		target, suffix = dest[:i], dest[i:]
	}
	if path.Ext(target) != SourceExt {
		return dest
	}

	segs := mapSegments(target, true)
	return path.Join(append([]string{"/"}, segs...)...) + suffix
}
