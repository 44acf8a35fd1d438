package sheets

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/tagtracer/backend/internal/domain"
)

// LoadWorkbook reads a catalog from the first sheet of an .xlsx file.
// The first row holds Product field names (id, name, website, price,
// features, rating, deliveryTime, url, imageUrl, category, isAiGenerated);
// a review summary may be given through reviewSentiment, reviewHighlights
// and reviewScore. Multi-valued cells are "|"-separated.
func LoadWorkbook(path string) ([]domain.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Str("path", path).Msg("failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []domain.Product{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	products := make([]domain.Product, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		record := rowRecord(header, cells)
		if len(record) == 0 {
			continue
		}
		products = append(products, MapRow(record, i))
	}

	log.Info().Str("path", path).Int("products", len(products)).Msg("catalog workbook loaded")
	return products, nil
}

// rowRecord turns one sheet row into the loosely typed shape MapRow expects
func rowRecord(header, cells []string) map[string]any {
	record := make(map[string]any, len(header))
	review := map[string]any{}

	for i, key := range header {
		if key == "" || i >= len(cells) {
			continue
		}
		value := strings.TrimSpace(cells[i])
		if value == "" {
			continue
		}

		switch key {
		case "reviewSentiment":
			review["sentiment"] = value
		case "reviewScore":
			review["score"] = value
		case "reviewHighlights":
			review["highlights"] = toAnyList(splitCell(value))
		default:
			record[key] = value
		}
	}

	if len(review) > 0 {
		record["reviewSummary"] = review
	}
	return record
}

func toAnyList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
