package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zmx4/aelp/internal/entities"
)

// mistakeExportLimit caps how many mistake rows a study sheet carries.
const mistakeExportLimit = 500

// MarkdownExporter writes favorites and recent mistakes into a single
// markdown study sheet with Obsidian-style frontmatter.
type MarkdownExporter struct {
	OutputPath string

	favorites FavoriteSource
	mistakes  MistakeSource
	now       func() time.Time
}

func NewMarkdownExporter(outputPath string, favorites FavoriteSource, mistakes MistakeSource) *MarkdownExporter {
	return &MarkdownExporter{
		OutputPath: outputPath,
		favorites:  favorites,
		mistakes:   mistakes,
		now:        time.Now,
	}
}

// Export loads the study data and writes the sheet to OutputPath,
// creating parent directories as needed.
func (exporter *MarkdownExporter) Export() (ExportResult, error) {
	favs, err := exporter.favorites.LoadFavorites()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to load favorites: %w", err)
	}

	rows, err := exporter.mistakes.LoadMistakeData(mistakeExportLimit)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to load mistakes: %w", err)
	}

	if dir := filepath.Dir(exporter.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	content, result := GenerateMarkdown(favs, rows, exporter.now())
	if err := os.WriteFile(exporter.OutputPath, []byte(content), 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write study sheet: %w", err)
	}
	return result, nil
}

// GenerateMarkdown renders the study sheet. Favorites without a loaded
// word row and mistakes without a word text are skipped.
func GenerateMarkdown(favs []entities.Favorite, rows []entities.Mistake, now time.Time) (string, ExportResult) {
	var builder strings.Builder
	var result ExportResult

	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: vocabulary_study_sheet\n")
	fmt.Fprintf(&builder, "created_at: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&builder, "tags: vocabulary, study\n")
	fmt.Fprintf(&builder, "---\n\n")

	fmt.Fprintf(&builder, "## Favorites\n\n")
	for _, fav := range favs {
		if fav.Word == nil || fav.Word.Text == "" {
			continue
		}
		fmt.Fprintf(&builder, "- **%s**: %s", fav.Word.Text, firstLine(fav.Word.Translation))
		if tags := fav.Tags(); len(tags) > 0 {
			fmt.Fprintf(&builder, " _(%s)_", strings.Join(tags, ", "))
		}
		fmt.Fprintf(&builder, "\n")
		result.FavoritesProcessed++
	}
	if result.FavoritesProcessed == 0 {
		fmt.Fprintf(&builder, "No favorites yet.\n")
	}

	fmt.Fprintf(&builder, "\n## Mistakes\n\n")
	for _, row := range rows {
		if row.WordText == "" {
			continue
		}
		fmt.Fprintf(&builder, "- **%s**: %s (missed %d, last %s)\n",
			row.WordText, firstLine(row.Translation), row.Count, row.Time.Format("2006-01-02"))
		result.MistakesProcessed++
	}
	if result.MistakesProcessed == 0 {
		fmt.Fprintf(&builder, "No mistakes recorded.\n")
	}

	return builder.String(), result
}

// firstLine keeps multi-line dictionary translations from breaking the
// list layout.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

var _ StudySheetExporter = (*MarkdownExporter)(nil)
