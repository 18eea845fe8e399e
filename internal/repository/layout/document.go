package layout

import (
	"encoding/json"
	"fmt"

	"github.com/msomdec/carousel-admin/internal/domain"
)

// record is the persisted shape of a carousel item.
type record struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Caption string `json:"caption"`
}

// EncodeDocument renders items as a pretty-printed JSON array.
func EncodeDocument(items []domain.CarouselItem) ([]byte, error) {
	records := make([]record, len(items))
	for i, it := range items {
		records[i] = record{URL: it.Reference, Type: it.ContentType, Caption: it.Caption}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode carousel document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a persisted document. Anything other than an array of
// records with a url is reported as domain.ErrCorruptDocument.
func DecodeDocument(data []byte) ([]domain.CarouselItem, error) {
	var records []*record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptDocument, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: document is not an array", domain.ErrCorruptDocument)
	}

	items := make([]domain.CarouselItem, len(records))
	for i, r := range records {
		if r == nil || r.URL == "" {
			return nil, fmt.Errorf("%w: item %d has no url", domain.ErrCorruptDocument, i)
		}
		items[i] = domain.CarouselItem{
			Reference:   r.URL,
			ContentType: r.Type,
			Kind:        domain.MediaKindOf(r.Type),
			Caption:     r.Caption,
		}
	}
	return items, nil
}
