package http

import (
	"time"

	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
)

func toError(err error) ErrorResp {
	errResp := ErrorResp{}
	switch e := err.(type) {
	case *domain.ValidationErr:
		errResp.Error.Code = BADREQUEST
		errResp.Error.Message = e.Error()
	case *domain.NotFoundErr:
		errResp.Error.Code = NOTFOUND
		errResp.Error.Message = e.Error()
	default:
		errResp.Error.Code = INTERNALERROR
		errResp.Error.Message = "internal server error"
	}
	return errResp
}

func toProduct(p domain.Product) Product {
	return Product{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Specs:       p.Specs,
		Price:       p.Price,
		InStock:     p.InStock,
		ReleaseDate: p.ReleaseDate.Format(time.DateOnly),
		Brands:      p.Brands,
		Categories:  p.Categories,
		Features:    p.Features,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toChatAnswer(answer domain.ChatAnswer) AskChatResp {
	resp := AskChatResp{
		Answer:  answer.Answer,
		Sources: []ProductSummary{},
	}
	for _, p := range answer.Sources {
		var price *string
		if p.Price != nil {
			formatted := p.FormatPrice()
			price = &formatted
		}
		resp.Sources = append(resp.Sources, ProductSummary{
			Id:      p.ID,
			Name:    p.Name,
			Price:   price,
			InStock: p.InStock,
		})
	}
	return resp
}

func toCatalogDigest(digest domain.CatalogDigest) CatalogDigest {
	return CatalogDigest{
		ProductCount:   digest.Content.ProductCount,
		InStockCount:   digest.Content.InStockCount,
		TopSellers:     digest.Content.TopSellers,
		NewestArrivals: digest.Content.NewestArrivals,
		Digest:         digest.Content.Digest,
		Model:          digest.Model,
		GeneratedAt:    digest.GeneratedAt,
	}
}
