package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"finboard/internal/client"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
	"finboard/internal/workflow"
)

// Printer renders results and workflow status lines to a terminal.
type Printer struct {
	out io.Writer
}

var _ workflow.Notifier = (*Printer)(nil)

// NewPrinter writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Notify prints one status line.
func (p *Printer) Notify(e workflow.Event) {
	var mark string
	switch e.Level {
	case workflow.LevelSuccess:
		mark = successStyle.Render("✓")
	case workflow.LevelWarning:
		mark = warningStyle.Render("!")
	default:
		mark = failureStyle.Render("✗")
	}
	fmt.Fprintln(p.out, mark+" "+e.Message)
}

// Transactions prints one page of transactions.
func (p *Printer) Transactions(page *pagination.PageResponse[models.Transaction]) {
	if len(page.Data) == 0 {
		fmt.Fprintln(p.out, mutedStyle.Render("No transactions"))
		return
	}

	widths := []int{7, 11, 40, 13, 44, 5}
	p.row(widths, headerStyle, "ID", "DATE", "DESCRIPTION", "AMOUNT", "CLASSIFICATION", "CONF")
	for _, tx := range page.Data {
		p.row(widths, textStyle,
			strconv.FormatUint(uint64(tx.ID), 10),
			tx.Date.Format("2006-01-02"),
			truncate(tx.Description, widths[2]-1),
			FormatAmount(tx.Amount),
			classification(tx.Category, tx.Subcategory),
			confidence(tx),
		)
	}
	fmt.Fprintln(p.out, mutedStyle.Render(fmt.Sprintf("page %d/%d, %d transactions", page.Page, page.TotalPages, page.TotalItems)))
}

// Rules prints rules in matching order.
func (p *Printer) Rules(rules []models.Rule) {
	if len(rules) == 0 {
		fmt.Fprintln(p.out, mutedStyle.Render("No rules"))
		return
	}

	widths := []int{6, 36, 46, 6, 5}
	p.row(widths, headerStyle, "ID", "PATTERN", "CLASSIFICATION", "CONF", "USES")
	for _, r := range rules {
		p.row(widths, textStyle,
			strconv.FormatUint(uint64(r.ID), 10),
			truncate(r.Pattern, widths[1]-1),
			r.Category+" / "+r.Subcategory,
			strconv.Itoa(r.Confidence),
			strconv.Itoa(r.TimesUsed),
		)
	}
}

// Batches prints import batches.
func (p *Printer) Batches(batches []models.ImportBatch) {
	if len(batches) == 0 {
		fmt.Fprintln(p.out, mutedStyle.Render("No batches"))
		return
	}

	widths := []int{38, 30, 18, 7}
	p.row(widths, headerStyle, "ID", "FILE", "IMPORTED", "ROWS")
	for _, b := range batches {
		p.row(widths, textStyle,
			b.ID,
			truncate(b.Filename, widths[1]-1),
			b.ImportedAt.Format("2006-01-02 15:04"),
			strconv.FormatInt(b.TransactionCount, 10),
		)
	}
}

// Taxonomy prints the category catalogue, one subcategory key per line.
func (p *Printer) Taxonomy(t *client.Taxonomy) {
	fmt.Fprintln(p.out, mutedStyle.Render("taxonomy "+t.Version))
	for _, cat := range t.Categories {
		fmt.Fprintln(p.out, headerStyle.Render(cat.Key)+" "+mutedStyle.Render(cat.Label))
		for _, sub := range cat.Subcategories {
			fmt.Fprintln(p.out, "  "+textStyle.Render(sub.Key)+" "+mutedStyle.Render(sub.Label))
		}
	}
}

// ApplyStats prints the per-classification counts of a bulk pass.
func (p *Printer) ApplyStats(result *services.ApplyResult) {
	for _, s := range result.Stats {
		fmt.Fprintf(p.out, "  %s %s\n", textStyle.Render(fmt.Sprintf("%4d", s.Count)), s.Category+" / "+s.Subcategory)
	}
}

func (p *Printer) row(widths []int, style lipgloss.Style, cells ...string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = style.Width(widths[i]).Render(cell)
	}
	fmt.Fprintln(p.out, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " "))
}

// FormatAmount renders cents as a plain decimal, e.g. -4500 -> "-45.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func classification(category, subcategory *string) string {
	if category == nil || *category == "" {
		return "-"
	}
	if subcategory == nil || *subcategory == "" {
		return *category
	}
	return *category + " / " + *subcategory
}

func confidence(tx models.Transaction) string {
	if !tx.IsCategorized() {
		return ""
	}
	if tx.IsManual() {
		return "M"
	}
	return strconv.Itoa(tx.Confidence)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
