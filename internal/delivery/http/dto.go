package http

import (
	"github.com/rs/zerolog/log"

	"github.com/tagtracer/backend/internal/domain"
	"github.com/tagtracer/backend/internal/infrastructure/markdown"
	"github.com/tagtracer/backend/internal/usecase"
)

type viewRequest struct {
	SearchTerm string `json:"searchTerm"`
	SortBy     string `json:"sortBy"`
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

type recommendationSearchRequest struct {
	Name string `json:"name" binding:"required"`
}

type chatRequest struct {
	Content string `json:"content" binding:"required"`
}

type beginEditRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type applyEditRequest struct {
	Mode   string `json:"mode" binding:"required,oneof=refine fresh"`
	Prompt string `json:"prompt" binding:"required"`
}

type productsResponse struct {
	Products    []domain.Product `json:"products"`
	Count       int              `json:"count"`
	LowestPrice float64          `json:"lowestPrice"`
}

type dashboardResponse struct {
	Products        []domain.Product     `json:"products"`
	CatalogSize     int                  `json:"catalogSize"`
	SearchTerm      string               `json:"searchTerm"`
	SortBy          domain.SortOption    `json:"sortBy"`
	LowestPrice     float64              `json:"lowestPrice"`
	BestValueIDs    []string             `json:"bestValueIds"`
	Chart           []usecase.ChartPoint `json:"chart"`
	Recommendations []domain.Product     `json:"recommendations"`
	Sources         []domain.Source      `json:"sources"`
	Loading         bool                 `json:"loading"`
	GlobalLoading   bool                 `json:"globalLoading"`
}

type chatMessageResponse struct {
	Role        domain.ChatRole `json:"role"`
	Content     string          `json:"content"`
	ContentHTML string          `json:"contentHtml"`
	Sources     []domain.Source `json:"sources,omitempty"`
}

func newProductsResponse(products []domain.Product) productsResponse {
	return productsResponse{
		Products:    nonNil(products),
		Count:       len(products),
		LowestPrice: usecase.LowestPrice(products),
	}
}

func newDashboardResponse(st usecase.AppState) dashboardResponse {
	view := st.View()
	lowest := usecase.LowestPrice(view)

	bestValue := []string{}
	for _, p := range view {
		if usecase.IsBestValue(p, view) {
			bestValue = append(bestValue, p.ID)
		}
	}

	return dashboardResponse{
		Products:        nonNil(view),
		CatalogSize:     len(st.Catalog),
		SearchTerm:      st.SearchTerm,
		SortBy:          st.SortBy,
		LowestPrice:     lowest,
		BestValueIDs:    bestValue,
		Chart:           usecase.PriceChart(view),
		Recommendations: nonNil(st.Recommendations),
		Sources:         nonNilSources(st.Sources),
		Loading:         st.Loading,
		GlobalLoading:   st.GlobalLoading,
	}
}

func newChatMessageResponse(msg domain.ChatMessage) chatMessageResponse {
	html, err := markdown.ToHTML(msg.Content)
	if err != nil {
		log.Warn().Err(err).Msg("failed to render chat markdown")
	}
	return chatMessageResponse{
		Role:        msg.Role,
		Content:     msg.Content,
		ContentHTML: html,
		Sources:     msg.Sources,
	}
}

func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}

func nonNilSources(sources []domain.Source) []domain.Source {
	if sources == nil {
		return []domain.Source{}
	}
	return sources
}
