package planning

import (
	"context"
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/application/mediator"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
)

// ListCatalogueQuery lists every preset of the injected catalogue
type ListCatalogueQuery struct{}

// CatalogueResponse is the result of ListCatalogueQuery
type CatalogueResponse struct {
	Sonars      []catalogue.SonarProfile `json:"sonars"`
	Orders      []catalogue.OrderProfile `json:"orders"`
	BottomTypes []catalogue.BottomType   `json:"bottom_types"`
}

// ListCatalogueHandler handles ListCatalogueQuery
type ListCatalogueHandler struct {
	catalogue *catalogue.Catalogue
}

// NewListCatalogueHandler creates a new ListCatalogueHandler
func NewListCatalogueHandler(cat *catalogue.Catalogue) *ListCatalogueHandler {
	return &ListCatalogueHandler{catalogue: cat}
}

// Handle executes the query
func (h *ListCatalogueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListCatalogueQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCatalogueQuery")
	}

	return &CatalogueResponse{
		Sonars:      h.catalogue.Sonars(),
		Orders:      h.catalogue.Orders(),
		BottomTypes: h.catalogue.BottomTypes(),
	}, nil
}
