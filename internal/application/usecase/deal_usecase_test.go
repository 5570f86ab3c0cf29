package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
)

// fakeDealRepo repositorio de deals en memoria para las pruebas.
type fakeDealRepo struct {
	deals map[string]*entity.Deal
}

func newFakeDealRepo(deals ...*entity.Deal) *fakeDealRepo {
	r := &fakeDealRepo{deals: make(map[string]*entity.Deal)}
	for _, d := range deals {
		r.deals[d.ID] = d
	}
	return r
}

func (r *fakeDealRepo) Create(d *entity.Deal) error { r.deals[d.ID] = d; return nil }
func (r *fakeDealRepo) GetByID(id string) (*entity.Deal, error) {
	return r.deals[id], nil
}
func (r *fakeDealRepo) ListByPipeline(pipelineID string) ([]*entity.Deal, error) {
	out := make([]*entity.Deal, 0, len(r.deals))
	for _, d := range r.deals {
		if d.PipelineID == pipelineID && d.Status == entity.DealStatusOpen {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDealRepo) ListByStage(stageID string) ([]*entity.Deal, error) {
	out := make([]*entity.Deal, 0, len(r.deals))
	for _, d := range r.deals {
		if d.StageID != nil && *d.StageID == stageID && d.Status == entity.DealStatusOpen {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDealRepo) Update(d *entity.Deal) error { r.deals[d.ID] = d; return nil }
func (r *fakeDealRepo) UpdateStage(dealID string, stageID *string) error {
	r.deals[dealID].StageID = stageID
	return nil
}

func setupDeals(t *testing.T, stages []*entity.Stage, deals ...*entity.Deal) (*DealUseCase, *fakeDealRepo) {
	t.Helper()
	dealRepo := newFakeDealRepo(deals...)
	return NewDealUseCase(dealRepo, newFakeStageRepo(stages...)), dealRepo
}

// TestDeal_CrearSinEtapaCaeEnLaDeEntrada un deal sin etapa explícita cae en
// la etapa marcada is_input aunque no sea la primera.
func TestDeal_CrearSinEtapaCaeEnLaDeEntrada(t *testing.T) {
	input := etapa("entrada", "pipe-1", 1)
	input.IsInput = true
	uc, _ := setupDeals(t, []*entity.Stage{etapa("otra", "pipe-1", 0), input})

	deal, err := uc.Create("biz-1", "pipe-1", dto.CreateDealRequest{
		CustomerName: "Ana",
		Value:        decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)
	require.NotNil(t, deal.StageID)
	assert.Equal(t, "entrada", *deal.StageID)
	assert.Equal(t, entity.DealStatusOpen, deal.Status)
}

// TestDeal_CrearSinEtapaDeEntradaUsaLaPrimera sin etapa marcada is_input, el
// deal cae en la primera por posición.
func TestDeal_CrearSinEtapaDeEntradaUsaLaPrimera(t *testing.T) {
	uc, _ := setupDeals(t, []*entity.Stage{etapa("b", "pipe-1", 1), etapa("a", "pipe-1", 0)})

	deal, err := uc.Create("biz-1", "pipe-1", dto.CreateDealRequest{
		CustomerName: "Ana",
		Value:        decimal.RequireFromString("500"),
	})
	require.NoError(t, err)
	require.NotNil(t, deal.StageID)
	assert.Equal(t, "a", *deal.StageID)
}

// TestDeal_CrearSinValueRechazado value es obligatorio: sin monto (o en cero)
// no se crea el deal.
func TestDeal_CrearSinValueRechazado(t *testing.T) {
	uc, repo := setupDeals(t, []*entity.Stage{etapa("a", "pipe-1", 0)})

	_, err := uc.Create("biz-1", "pipe-1", dto.CreateDealRequest{CustomerName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create("biz-1", "pipe-1", dto.CreateDealRequest{
		CustomerName: "Ana",
		Value:        decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.deals, "no debe quedar ningún deal persistido")
}

// TestDeal_CrearConEtapaDeOtroPipelineRechazado la etapa debe pertenecer al pipeline.
func TestDeal_CrearConEtapaDeOtroPipelineRechazado(t *testing.T) {
	uc, _ := setupDeals(t, []*entity.Stage{etapa("ajena", "pipe-2", 0)})

	stageID := "ajena"
	_, err := uc.Create("biz-1", "pipe-1", dto.CreateDealRequest{
		CustomerName: "Ana",
		Value:        decimal.RequireFromString("1000"),
		StageID:      &stageID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestDeal_MoverAEtapaDeRevenueMarcaGanado entrar a una etapa is_revenue
// marca el deal como ganado con fecha de cierre; salir lo desmarca.
func TestDeal_MoverAEtapaDeRevenueMarcaGanado(t *testing.T) {
	won := etapa("ganado", "pipe-1", 1)
	won.IsRevenue = true
	stageID := "abierto"
	deal := &entity.Deal{
		ID:         "d1",
		BusinessID: "biz-1",
		PipelineID: "pipe-1",
		StageID:    &stageID,
		Status:     entity.DealStatusOpen,
	}
	uc, repo := setupDeals(t, []*entity.Stage{etapa("abierto", "pipe-1", 0), won}, deal)

	moved, err := uc.MoveToStage("d1", dto.MoveDealRequest{StageID: "ganado"})
	require.NoError(t, err)
	assert.True(t, moved.IsRevenue)
	require.NotNil(t, moved.ClosedAt)
	assert.Equal(t, "ganado", *repo.deals["d1"].StageID)

	back, err := uc.MoveToStage("d1", dto.MoveDealRequest{StageID: "abierto"})
	require.NoError(t, err)
	assert.False(t, back.IsRevenue)
	assert.Nil(t, back.ClosedAt)
}

// TestDeal_MoverAEtapaDeOtroPipelineRechazado no se cruza de pipeline.
func TestDeal_MoverAEtapaDeOtroPipelineRechazado(t *testing.T) {
	stageID := "abierto"
	deal := &entity.Deal{
		ID:         "d1",
		PipelineID: "pipe-1",
		StageID:    &stageID,
		Status:     entity.DealStatusOpen,
	}
	uc, _ := setupDeals(t, []*entity.Stage{etapa("abierto", "pipe-1", 0), etapa("ajena", "pipe-2", 0)}, deal)

	_, err := uc.MoveToStage("d1", dto.MoveDealRequest{StageID: "ajena"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestDeal_ArchivarSacaDelTableroYEsIdempotente archivar quita la etapa y
// repetirlo no cambia nada.
func TestDeal_ArchivarSacaDelTableroYEsIdempotente(t *testing.T) {
	stageID := "abierto"
	deal := &entity.Deal{
		ID:         "d1",
		PipelineID: "pipe-1",
		StageID:    &stageID,
		Status:     entity.DealStatusOpen,
	}
	uc, repo := setupDeals(t, []*entity.Stage{etapa("abierto", "pipe-1", 0)}, deal)

	archived, err := uc.Archive("d1")
	require.NoError(t, err)
	assert.Equal(t, entity.DealStatusArchived, archived.Status)
	assert.Nil(t, archived.StageID)

	again, err := uc.Archive("d1")
	require.NoError(t, err)
	assert.Equal(t, entity.DealStatusArchived, again.Status)

	list, err := repo.ListByPipeline("pipe-1")
	require.NoError(t, err)
	assert.Empty(t, list, "el deal archivado no aparece en el tablero")
}

// TestDeal_MoverArchivadoRechazado un deal archivado no se mueve.
func TestDeal_MoverArchivadoRechazado(t *testing.T) {
	deal := &entity.Deal{
		ID:         "d1",
		PipelineID: "pipe-1",
		Status:     entity.DealStatusArchived,
	}
	uc, _ := setupDeals(t, []*entity.Stage{etapa("abierto", "pipe-1", 0)}, deal)

	_, err := uc.MoveToStage("d1", dto.MoveDealRequest{StageID: "abierto"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
