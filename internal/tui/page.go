package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/pders01/spotlight/internal/search"
	"github.com/pders01/spotlight/internal/validation"
)

// Page is the Markdown document the overlay is drawn on. It is split into
// blocks so search hits can be mapped back to rendered lines.
type Page struct {
	Title    string
	Path     string
	blocks   []string
	searcher search.PageSearcher
}

func NewPage(title, markdown string) *Page {
	blocks := splitBlocks(markdown)
	if title == "" {
		title = firstHeading(blocks)
	}
	return &Page{
		Title:    title,
		blocks:   blocks,
		searcher: search.NewPageSearcher(blocks),
	}
}

// LoadPage reads a Markdown file.
func LoadPage(path string) (*Page, error) {
	validPath, err := validation.SourcePath(path)
	if err != nil {
		return nil, wrapErr("invalid page path", err)
	}
	data, err := os.ReadFile(validPath)
	if err != nil {
		return nil, wrapErr("reading page", err)
	}
	p := NewPage("", string(data))
	if p.Title == "" {
		p.Title = strings.TrimSuffix(filepath.Base(validPath), filepath.Ext(validPath))
	}
	p.Path = validPath
	return p, nil
}

// splitBlocks splits Markdown on blank lines. Fenced code stays in one
// block.
func splitBlocks(markdown string) []string {
	var (
		blocks  []string
		current []string
		inFence bool
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if trimmed == "" && !inFence {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func firstHeading(blocks []string) string {
	for _, b := range blocks {
		if strings.HasPrefix(b, "# ") {
			line, _, _ := strings.Cut(b, "\n")
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// renderedPage holds the rendered lines and the first line of every
// block.
type renderedPage struct {
	lines  []string
	starts []int
}

func renderBlocks(r *glamour.TermRenderer, blocks []string) (renderedPage, error) {
	var page renderedPage
	page.starts = make([]int, len(blocks))
	for i, b := range blocks {
		out, err := r.Render(b)
		if err != nil {
			return renderedPage{}, fmt.Errorf("block %d: %w", i, err)
		}
		page.starts[i] = len(page.lines)
		page.lines = append(page.lines, strings.Split(strings.Trim(out, "\n"), "\n")...)
		page.lines = append(page.lines, "")
	}
	return page, nil
}

// highlightLines marks every occurrence of keyword. Marked lines lose
// their other styling. It returns the new lines and how many were
// marked.
func highlightLines(lines []string, keyword string) ([]string, int) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return lines, 0
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(keyword))

	out := make([]string, len(lines))
	marked := 0
	for i, line := range lines {
		plain := ansi.Strip(line)
		if !re.MatchString(plain) {
			out[i] = line
			continue
		}
		out[i] = re.ReplaceAllStringFunc(plain, func(m string) string {
			return MarkStyle.Render(m)
		})
		marked++
	}
	return out, marked
}
