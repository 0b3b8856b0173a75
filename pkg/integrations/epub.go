package integrations

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/google/uuid"
	"github.com/kerbaras/pokedex/pkg/data"
	"github.com/kerbaras/pokedex/pkg/utils"
	"go.uber.org/zap"
)

const (
	artworkMaxWidth  = 320
	artworkMaxHeight = 320
)

// FavoritesBook renders a list of pokemon as an EPUB field guide, one
// section per entry.
type FavoritesBook struct {
	outputDir string
	assets    AssetFetcher
	scaler    *ArtworkScaler
	logger    *zap.Logger
}

func NewFavoritesBook(outputDir string, assets AssetFetcher, logger *zap.Logger) *FavoritesBook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesBook{
		outputDir: outputDir,
		assets:    assets,
		scaler:    NewArtworkScaler(artworkMaxWidth, artworkMaxHeight),
		logger:    logger,
	}
}

// Create writes <title>.epub into the output directory and returns its path.
// Artwork that cannot be fetched or decoded is skipped.
func (b *FavoritesBook) Create(ctx context.Context, title string, items []*data.Pokemon) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no pokemon to export")
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	workDir, err := os.MkdirTemp("", "pokedex-epub-*")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("Pokédex")
	e.SetDescription(fmt.Sprintf("%d favorite Pokémon", len(items)))
	e.SetLang("en")
	e.SetIdentifier("urn:uuid:" + uuid.NewString())

	for _, p := range items {
		imagePath := b.addArtwork(ctx, e, workDir, p)
		if _, err := e.AddSection(renderEntry(p, imagePath), utils.FormatName(p.Name), "", ""); err != nil {
			return "", fmt.Errorf("failed to add %s: %w", p.Name, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

// addArtwork returns the internal EPUB path of the scaled artwork, or "".
func (b *FavoritesBook) addArtwork(ctx context.Context, e *epub.Epub, workDir string, p *data.Pokemon) string {
	url := utils.ImageURL(p)
	if url == "" || b.assets == nil {
		return ""
	}

	content, _, err := b.assets.Fetch(ctx, url)
	if err != nil {
		b.logger.Warn("skipping artwork", zap.String("pokemon", p.Name), zap.Error(err))
		return ""
	}
	scaled, err := b.scaler.ScaleData(content)
	if err != nil {
		b.logger.Warn("skipping undecodable artwork", zap.String("pokemon", p.Name), zap.Error(err))
		return ""
	}

	filename := fmt.Sprintf("%04d-%s.png", p.ID, sanitizeFilename(p.Name))
	localPath := filepath.Join(workDir, filename)
	if err := os.WriteFile(localPath, scaled, 0644); err != nil {
		b.logger.Warn("failed to stage artwork", zap.String("pokemon", p.Name), zap.Error(err))
		return ""
	}

	internalPath, err := e.AddImage(localPath, filename)
	if err != nil {
		b.logger.Warn("failed to embed artwork", zap.String("pokemon", p.Name), zap.Error(err))
		return ""
	}
	return internalPath
}

func renderEntry(p *data.Pokemon, imagePath string) string {
	var body strings.Builder
	name := html.EscapeString(utils.FormatName(p.Name))

	fmt.Fprintf(&body, "<h1>%s <small>%s</small></h1>\n", name, utils.FormatID(p.ID))
	if imagePath != "" {
		fmt.Fprintf(&body, `<div class="artwork"><img src="%s" alt="%s"/></div>%s`, imagePath, name, "\n")
	}
	fmt.Fprintf(&body, "<p><strong>Types:</strong> %s</p>\n", html.EscapeString(utils.FormatTypes(p)))
	fmt.Fprintf(&body, "<p><strong>Height:</strong> %s &#183; <strong>Weight:</strong> %s</p>\n",
		utils.FormatHeight(p), utils.FormatWeight(p))

	if rows := utils.StatRows(p); len(rows) > 0 {
		body.WriteString("<table>\n")
		for _, row := range rows {
			fmt.Fprintf(&body, "<tr><th>%s</th><td>%d</td></tr>\n", html.EscapeString(row.Label), row.Value)
		}
		body.WriteString("</table>\n")
	}
	return body.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
