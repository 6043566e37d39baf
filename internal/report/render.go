package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/Pythia/pkg/models"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// lastUpdatedLayout is the human-readable "last updated" stamp
const lastUpdatedLayout = "Monday, January 2, 2006 3:04 PM MST"

var pageTemplate = template.Must(
	template.New("index.html.tmpl").
		Funcs(template.FuncMap{"spread": FormatSpread}).
		ParseFS(templateFS, "templates/index.html.tmpl"),
)

// pageData is the template input
type pageData struct {
	SportName   string
	LastUpdated string
	NoGames     bool
	Message     string
	Columns     []string
	Rows        []models.ReportRow
}

// RenderHTML writes the full HTML document for r. Times are shown in location.
func RenderHTML(w io.Writer, r *Report, location *time.Location) error {
	if location == nil {
		location = time.UTC
	}

	data := pageData{
		SportName:   r.SportName,
		LastUpdated: r.GeneratedAt.In(location).Format(lastUpdatedLayout),
		NoGames:     r.NoGames,
		Message:     NoGamesMessage,
		Columns:     models.ReportColumns,
		Rows:        r.Rows,
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RenderJSON writes the rows as a JSON array of records
func RenderJSON(w io.Writer, r *Report) error {
	rows := r.Rows
	if rows == nil {
		rows = []models.ReportRow{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

// FormatSpread renders a spread with an explicit sign: -3.5, +7.0, 0.0
func FormatSpread(point float64) string {
	s := strconv.FormatFloat(point, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if point > 0 {
		s = "+" + s
	}
	return s
}
