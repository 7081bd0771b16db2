package handler

import (
	"github.com/marketplace/commodity-api/internal/core/domain"
	"github.com/marketplace/commodity-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createCommodityRequest) ports.CreateCommodityInput {
	return ports.CreateCommodityInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
	}
}

func toPatch(req updateCommodityRequest) domain.CommodityPatch {
	return domain.CommodityPatch{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
	}
}
