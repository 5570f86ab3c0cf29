package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Crm-api/internal/application/dto"
)

// Con 12 productos y páginas de 5 hay 3 páginas; la página 3 arranca en la fila 10
// (items 11 y 12 en numeración 1-based).
func TestPageRequest_Paginacion(t *testing.T) {
	p := dto.PageRequest{Page: 3, PageSize: 5}
	assert.Equal(t, 10, p.Offset())

	resp := dto.NewPageResponse(3, 5, 12)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 12, resp.Total)
}

func TestPageRequest_Defaults(t *testing.T) {
	var p dto.PageRequest
	p.DefaultPage()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = dto.PageRequest{Page: 2, PageSize: 500}
	p.DefaultPage()
	assert.Equal(t, 100, p.PageSize, "el tamaño de página se acota a 100")
}

func TestNewPageResponse_SinFilas(t *testing.T) {
	resp := dto.NewPageResponse(1, 5, 0)
	assert.Equal(t, 0, resp.TotalPages)
}
