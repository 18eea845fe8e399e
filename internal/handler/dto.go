package handler

import "github.com/msomdec/carousel-admin/internal/domain"

// CarouselItemDTO is the JSON representation of a carousel item, matching the
// persisted document fields plus the derived media kind.
type CarouselItemDTO struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Caption string `json:"caption"`
}

func toCarouselItemDTOs(items []domain.CarouselItem) []CarouselItemDTO {
	dtos := make([]CarouselItemDTO, len(items))
	for i, it := range items {
		dtos[i] = CarouselItemDTO{
			URL:     it.Reference,
			Type:    it.ContentType,
			Kind:    string(it.Kind),
			Caption: it.Caption,
		}
	}
	return dtos
}
