package usecase

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

// fakeStageRepo repositorio de etapas en memoria para las pruebas.
type fakeStageRepo struct {
	stages map[string]*entity.Stage
}

func newFakeStageRepo(stages ...*entity.Stage) *fakeStageRepo {
	r := &fakeStageRepo{stages: make(map[string]*entity.Stage)}
	for _, s := range stages {
		r.stages[s.ID] = s
	}
	return r
}

func (r *fakeStageRepo) Create(s *entity.Stage) error { r.stages[s.ID] = s; return nil }
func (r *fakeStageRepo) GetByID(id string) (*entity.Stage, error) {
	return r.stages[id], nil
}
func (r *fakeStageRepo) ListByPipeline(pipelineID string) ([]*entity.Stage, error) {
	out := make([]*entity.Stage, 0, len(r.stages))
	for _, s := range r.stages {
		if s.PipelineID == pipelineID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
func (r *fakeStageRepo) Update(s *entity.Stage) error { r.stages[s.ID] = s; return nil }
func (r *fakeStageRepo) UpdatePosition(stageID string, position int) error {
	r.stages[stageID].Position = position
	return nil
}

// fakeStageTxRunner pasa el mismo repo al callback: sin transacción real.
type fakeStageTxRunner struct {
	repo *fakeStageRepo
}

func (r *fakeStageTxRunner) Run(_ context.Context, fn func(repository.StageRepository) error) error {
	return fn(r.repo)
}

func etapa(id, pipelineID string, position int) *entity.Stage {
	return &entity.Stage{ID: id, PipelineID: pipelineID, Name: "Etapa " + id, Position: position}
}

func setupStages(t *testing.T, stages ...*entity.Stage) (*StageUseCase, *fakeStageRepo) {
	t.Helper()
	repo := newFakeStageRepo(stages...)
	return NewStageUseCase(repo, &fakeStageTxRunner{repo: repo}), repo
}

// TestStage_MoverIntercambiaSoloDosPosiciones mover una columna intercambia
// su posición con la vecina y no toca al resto.
func TestStage_MoverIntercambiaSoloDosPosiciones(t *testing.T) {
	uc, repo := setupStages(t,
		etapa("a", "pipe-1", 0),
		etapa("b", "pipe-1", 1),
		etapa("c", "pipe-1", 2),
	)

	moved, err := uc.Move(context.Background(), "b", dto.MoveStageRequest{Direction: MoveRight})
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position)

	assert.Equal(t, 0, repo.stages["a"].Position, "la etapa ajena al swap no se mueve")
	assert.Equal(t, 2, repo.stages["b"].Position)
	assert.Equal(t, 1, repo.stages["c"].Position)
}

// TestStage_MoverEnElBordeRechazado mover la primera a la izquierda o la
// última a la derecha devuelve ErrStageBoundary sin tocar posiciones.
func TestStage_MoverEnElBordeRechazado(t *testing.T) {
	uc, repo := setupStages(t,
		etapa("a", "pipe-1", 0),
		etapa("b", "pipe-1", 1),
	)

	_, err := uc.Move(context.Background(), "a", dto.MoveStageRequest{Direction: MoveLeft})
	assert.ErrorIs(t, err, domain.ErrStageBoundary)

	_, err = uc.Move(context.Background(), "b", dto.MoveStageRequest{Direction: MoveRight})
	assert.ErrorIs(t, err, domain.ErrStageBoundary)

	assert.Equal(t, 0, repo.stages["a"].Position)
	assert.Equal(t, 1, repo.stages["b"].Position)
}

// TestStage_DireccionInvalidaRechazada solo se aceptan left y right.
func TestStage_DireccionInvalidaRechazada(t *testing.T) {
	uc, _ := setupStages(t, etapa("a", "pipe-1", 0))

	_, err := uc.Move(context.Background(), "a", dto.MoveStageRequest{Direction: "up"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestStage_ReordenEnVueloRechazado con un reorden en curso en el pipeline,
// el segundo pedido recibe ErrReorderInFlight.
func TestStage_ReordenEnVueloRechazado(t *testing.T) {
	uc, _ := setupStages(t,
		etapa("a", "pipe-1", 0),
		etapa("b", "pipe-1", 1),
	)

	require.True(t, uc.acquire("pipe-1"))
	defer uc.release("pipe-1")

	_, err := uc.Move(context.Background(), "a", dto.MoveStageRequest{Direction: MoveRight})
	assert.ErrorIs(t, err, domain.ErrReorderInFlight)
}

// TestStage_CrearAsignaPosicionAlFinal las etapas nuevas caen al final del tablero.
func TestStage_CrearAsignaPosicionAlFinal(t *testing.T) {
	uc, _ := setupStages(t,
		etapa("a", "pipe-1", 0),
		etapa("b", "pipe-1", 1),
	)

	created, err := uc.Create("pipe-1", dto.CreateStageRequest{Name: "Cierre"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.Position)
}

// TestStage_CrearSinNombreRechazado el nombre es obligatorio.
func TestStage_CrearSinNombreRechazado(t *testing.T) {
	uc, _ := setupStages(t)

	_, err := uc.Create("pipe-1", dto.CreateStageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
