package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Crm-api/internal/domain/entity"
)

func intPtr(n int) *int { return &n }

// Clasificación derivada del stock según el umbral mínimo.
func TestProduct_StockStatus(t *testing.T) {
	cases := []struct {
		name     string
		stock    int
		minStock *int
		want     string
	}{
		{"stock cero es agotado", 0, intPtr(5), entity.StockStatusOut},
		{"stock cero sin umbral también es agotado", 0, nil, entity.StockStatusOut},
		{"stock igual al umbral es bajo", 5, intPtr(5), entity.StockStatusLow},
		{"stock debajo del umbral es bajo", 3, intPtr(5), entity.StockStatusLow},
		{"stock encima del umbral es normal", 6, intPtr(5), entity.StockStatusIn},
		{"sin umbral el stock positivo es normal", 1, nil, entity.StockStatusIn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &entity.Product{Stock: tc.stock, MinStock: tc.minStock}
			assert.Equal(t, tc.want, p.StockStatus())
		})
	}
}
