package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/application/inventory"
	"github.com/tu-usuario/insumos-api/internal/domain"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
	"github.com/tu-usuario/insumos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInputRepo struct {
	inputs        map[string]*entity.Input
	failGetByCode error
}

func newFakeInputRepo() *fakeInputRepo {
	return &fakeInputRepo{inputs: make(map[string]*entity.Input)}
}

func (r *fakeInputRepo) Create(in *entity.Input) error {
	r.inputs[in.ID] = in
	return nil
}

func (r *fakeInputRepo) GetByID(id string) (*entity.Input, error) {
	return r.inputs[id], nil
}

func (r *fakeInputRepo) GetByCode(code string) (*entity.Input, error) {
	if r.failGetByCode != nil {
		return nil, r.failGetByCode
	}
	for _, in := range r.inputs {
		if in.Code == code {
			return in, nil
		}
	}
	return nil, nil
}

func (r *fakeInputRepo) Update(in *entity.Input) error {
	r.inputs[in.ID] = in
	return nil
}

func (r *fakeInputRepo) UpdateCurrentStock(inputID string, stock decimal.Decimal) error {
	in, ok := r.inputs[inputID]
	if !ok {
		return domain.ErrNotFound
	}
	in.CurrentStock = stock
	return nil
}

func (r *fakeInputRepo) List(limit, offset int) ([]*entity.Input, error) {
	out := make([]*entity.Input, 0, len(r.inputs))
	for _, in := range r.inputs {
		out = append(out, in)
	}
	return out, nil
}

func (r *fakeInputRepo) ListLowStock() ([]*entity.Input, error) {
	var out []*entity.Input
	for _, in := range r.inputs {
		if in.CurrentStock.LessThanOrEqual(in.MinStock) {
			out = append(out, in)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	batches         map[string]*entity.InputBatch
	failGetByNumber error
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[string]*entity.InputBatch)}
}

func (r *fakeBatchRepo) Create(b *entity.InputBatch) error {
	copied := *b
	r.batches[b.ID] = &copied
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.InputBatch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBatchRepo) GetByIDForUpdate(id string) (*entity.InputBatch, error) {
	return r.GetByID(id)
}

func (r *fakeBatchRepo) GetByInputAndNumber(inputID, number string) (*entity.InputBatch, error) {
	if r.failGetByNumber != nil {
		return nil, r.failGetByNumber
	}
	for _, b := range r.batches {
		if b.InputID == inputID && b.BatchNumber == number {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBatchRepo) Update(b *entity.InputBatch) error {
	if _, ok := r.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *b
	r.batches[b.ID] = &copied
	return nil
}

func (r *fakeBatchRepo) ListByInput(inputID string, activeOnly bool) ([]*entity.InputBatch, error) {
	var out []*entity.InputBatch
	for _, b := range r.batches {
		if b.InputID != inputID {
			continue
		}
		if activeOnly && !b.IsActive {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBatchRepo) SumActiveQuantity(inputID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range r.batches {
		if b.InputID == inputID && b.IsActive {
			total = total.Add(b.CurrentQuantity)
		}
	}
	return total, nil
}

type fakeMovementRepo struct {
	movements []*entity.InputBatchMovement
}

func (r *fakeMovementRepo) Create(m *entity.InputBatchMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByInput(inputID string, from, to *time.Time, limit, offset int) ([]*entity.InputBatchMovement, error) {
	var out []*entity.InputBatchMovement
	for _, m := range r.movements {
		if m.InputID == inputID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByBatch(batchID string, limit int) ([]*entity.InputBatchMovement, error) {
	var out []*entity.InputBatchMovement
	for _, m := range r.movements {
		if m.BatchID == batchID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback sin transacción real (los fakes ya son
// memoria compartida).
type fakeTxRunner struct {
	batchRepo *fakeBatchRepo
	movRepo   *fakeMovementRepo
	inputRepo *fakeInputRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.InputBatchRepository,
	movRepo repository.InputBatchMovementRepository,
	inputRepo repository.InputRepository,
) error) error {
	return fn(r.batchRepo, r.movRepo, r.inputRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type batchFixture struct {
	uc        *inventory.BatchUseCase
	inputRepo *fakeInputRepo
	batchRepo *fakeBatchRepo
	movRepo   *fakeMovementRepo
	input     *entity.Input
}

func newBatchFixture(t *testing.T) *batchFixture {
	t.Helper()
	inputRepo := newFakeInputRepo()
	batchRepo := newFakeBatchRepo()
	movRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{batchRepo: batchRepo, movRepo: movRepo, inputRepo: inputRepo}

	input := &entity.Input{
		ID:       "input-1",
		Code:     "TELA-ROJA",
		Name:     "Tela roja",
		MinStock: decimal.NewFromInt(5),
		IsActive: true,
	}
	require.NoError(t, inputRepo.Create(input))

	return &batchFixture{
		uc:        inventory.NewBatchUseCase(tx, inputRepo, batchRepo, movRepo),
		inputRepo: inputRepo,
		batchRepo: batchRepo,
		movRepo:   movRepo,
		input:     input,
	}
}

func (f *batchFixture) createBatch(t *testing.T, number string, qty string) *entity.InputBatch {
	t.Helper()
	batch, err := f.uc.CreateBatch(context.Background(), inventory.Actor{ID: "u1", Name: "María"}, f.input.ID, dto.CreateBatchRequest{
		BatchNumber: number,
		Quantity:    decimal.RequireFromString(qty),
		UnitCost:    decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	return batch
}

var actor = inventory.Actor{ID: "u1", Name: "María"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBatch_EntradaRecalculaStock(t *testing.T) {
	f := newBatchFixture(t)

	batch := f.createBatch(t, "L-001", "10")

	assert.True(t, batch.CurrentQuantity.Equal(batch.InitialQuantity),
		"el lote nace con cantidad actual = inicial")
	assert.True(t, batch.ReservedQuantity.IsZero())

	// Movimiento ENTRADA escrito
	require.Len(t, f.movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeENTRADA, f.movRepo.movements[0].Type)
	assert.Equal(t, "María", f.movRepo.movements[0].CreatedByName)

	// El agregador escribió el stock del insumo
	input, _ := f.inputRepo.GetByID(f.input.ID)
	assert.True(t, input.CurrentStock.Equal(decimal.NewFromInt(10)))
}

func TestCreateBatch_NumeroDuplicadoPorInsumo(t *testing.T) {
	f := newBatchFixture(t)
	f.createBatch(t, "L-001", "10")

	_, err := f.uc.CreateBatch(context.Background(), actor, f.input.ID, dto.CreateBatchRequest{
		BatchNumber: "L-001",
		Quantity:    decimal.NewFromInt(5),
		UnitCost:    decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateBatch_ErrorDeLecturaDelDuplicadoSePropaga(t *testing.T) {
	f := newBatchFixture(t)
	readErr := errors.New("conexión perdida")
	f.batchRepo.failGetByNumber = readErr

	// Un fallo transitorio de lectura no debe leerse como "no hay duplicado"
	_, err := f.uc.CreateBatch(context.Background(), actor, f.input.ID, dto.CreateBatchRequest{
		BatchNumber: "L-001",
		Quantity:    decimal.NewFromInt(5),
		UnitCost:    decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, readErr)
	assert.Empty(t, f.batchRepo.batches, "no se crea nada con el chequeo a ciegas")
}

func TestUpdateBatch_ErrorDeLecturaDelDuplicadoSePropaga(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	readErr := errors.New("conexión perdida")
	f.batchRepo.failGetByNumber = readErr

	newNumber := "L-002"
	_, err := f.uc.UpdateBatch(context.Background(), batch.ID, dto.UpdateBatchRequest{BatchNumber: &newNumber})
	assert.ErrorIs(t, err, readErr)

	after, getErr := f.uc.GetBatch(batch.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "L-001", after.BatchNumber, "el número no cambia si el chequeo falló")
}

func TestCreateInput_ErrorDeLecturaDelCodigoSePropaga(t *testing.T) {
	f := newBatchFixture(t)
	readErr := errors.New("conexión perdida")
	f.inputRepo.failGetByCode = readErr

	inputUC := inventory.NewInputUseCase(f.inputRepo)
	_, err := inputUC.Create(dto.CreateInputRequest{Code: "BOT-01", Name: "Botones"})
	assert.ErrorIs(t, err, readErr)
}

func TestReserve_MueveCantidadAlPoolReservado(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	updated, err := f.uc.Reserve(context.Background(), actor, batch.ID, dto.ReserveRequest{
		Quantity: decimal.NewFromInt(4),
		OrderRef: "orden-77",
	})
	require.NoError(t, err)

	assert.True(t, updated.CurrentQuantity.Equal(decimal.NewFromInt(6)),
		"la reserva descuenta el pool gastable")
	assert.True(t, updated.ReservedQuantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, updated.AvailableQuantity().Equal(decimal.NewFromInt(2)),
		"disponible = actual - reservado")

	// El stock del insumo sigue la cantidad actual de los lotes activos
	input, _ := f.inputRepo.GetByID(f.input.ID)
	assert.True(t, input.CurrentStock.Equal(decimal.NewFromInt(6)))
}

func TestReserve_StockInsuficienteNoMueveNada(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	// 10 actuales - 4 reservados = 6 disponibles; pedir 7 debe fallar
	_, err := f.uc.Reserve(context.Background(), actor, batch.ID, dto.ReserveRequest{Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)

	_, err = f.uc.Reserve(context.Background(), actor, batch.ID, dto.ReserveRequest{Quantity: decimal.NewFromInt(7)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail), "el error debe llevar el detalle del faltante")
	assert.Equal(t, "L-001", detail.Resource)
	assert.True(t, detail.Requested.Equal(decimal.NewFromInt(7)))
	assert.True(t, detail.Available.Equal(decimal.NewFromInt(2)))

	// Contadores intactos tras el fallo
	after, err := f.uc.GetBatch(batch.ID)
	require.NoError(t, err)
	assert.True(t, after.CurrentQuantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, after.ReservedQuantity.Equal(decimal.NewFromInt(4)))
}

func TestReleaseYSalida_CicloCompleto(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	_, err := f.uc.Reserve(context.Background(), actor, batch.ID, dto.ReserveRequest{Quantity: decimal.NewFromInt(6)})
	require.NoError(t, err)

	// Liberar 2: vuelven al pool gastable
	released, err := f.uc.Release(context.Background(), actor, batch.ID, dto.ReserveRequest{Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)
	assert.True(t, released.CurrentQuantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, released.ReservedQuantity.Equal(decimal.NewFromInt(4)))

	// Salida definitiva de 4: solo baja lo reservado
	out, err := f.uc.RecordOutput(context.Background(), actor, batch.ID, dto.OutputRequest{
		Quantity:      decimal.NewFromInt(4),
		ProductionRef: "prod-9",
	})
	require.NoError(t, err)
	assert.True(t, out.CurrentQuantity.Equal(decimal.NewFromInt(6)),
		"la salida no toca el pool gastable: ya salió al reservar")
	assert.True(t, out.ReservedQuantity.IsZero())

	// Libro completo: ENTRADA, RESERVA, LIBERACION, SALIDA
	types := make([]string, 0, len(f.movRepo.movements))
	for _, m := range f.movRepo.movements {
		types = append(types, m.Type)
	}
	assert.Equal(t, []string{
		entity.MovementTypeENTRADA,
		entity.MovementTypeRESERVA,
		entity.MovementTypeLIBERACION,
		entity.MovementTypeSALIDA,
	}, types)
}

func TestRecordOutput_MasQueLoReservadoFalla(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	_, err := f.uc.RecordOutput(context.Background(), actor, batch.ID, dto.OutputRequest{Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"sin reserva previa no hay nada que consumir")
}

func TestAdjustQuantity_RegistraDeltaAbsoluto(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	updated, err := f.uc.AdjustQuantity(context.Background(), actor, batch.ID, dto.AdjustQuantityRequest{
		NewQuantity: decimal.NewFromInt(7),
		Reason:      "daño por humedad",
	})
	require.NoError(t, err)
	assert.True(t, updated.CurrentQuantity.Equal(decimal.NewFromInt(7)))

	adjust := f.movRepo.movements[len(f.movRepo.movements)-1]
	assert.Equal(t, entity.MovementTypeAJUSTE, adjust.Type)
	assert.True(t, adjust.Quantity.Equal(decimal.NewFromInt(3)), "se registra |nueva - anterior|")
	assert.Equal(t, "daño por humedad", adjust.Reason)

	input, _ := f.inputRepo.GetByID(f.input.ID)
	assert.True(t, input.CurrentStock.Equal(decimal.NewFromInt(7)))
}

func TestAdjustQuantity_NegativaEsInvalida(t *testing.T) {
	f := newBatchFixture(t)
	batch := f.createBatch(t, "L-001", "10")

	_, err := f.uc.AdjustQuantity(context.Background(), actor, batch.ID, dto.AdjustQuantityRequest{
		NewQuantity: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockAggregator_SoloLotesActivosSuman(t *testing.T) {
	f := newBatchFixture(t)
	f.createBatch(t, "L-001", "10")
	second := f.createBatch(t, "L-002", "5")

	input, _ := f.inputRepo.GetByID(f.input.ID)
	require.True(t, input.CurrentStock.Equal(decimal.NewFromInt(15)))

	// Desactivar un lote lo saca de la suma
	inactive := false
	_, err := f.uc.UpdateBatch(context.Background(), second.ID, dto.UpdateBatchRequest{IsActive: &inactive})
	require.NoError(t, err)

	input, _ = f.inputRepo.GetByID(f.input.ID)
	assert.True(t, input.CurrentStock.Equal(decimal.NewFromInt(10)),
		"el stock del insumo es la suma de los lotes activos")
}

func TestStockAggregator_Recalculate(t *testing.T) {
	f := newBatchFixture(t)
	f.createBatch(t, "L-001", "8")

	tx := &fakeTxRunner{batchRepo: f.batchRepo, movRepo: f.movRepo, inputRepo: f.inputRepo}
	aggregator := inventory.NewStockAggregator(tx, f.inputRepo)

	// Simular una proyección desincronizada
	require.NoError(t, f.inputRepo.UpdateCurrentStock(f.input.ID, decimal.NewFromInt(999)))

	total, err := aggregator.Recalculate(context.Background(), f.input.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(8)))

	input, _ := f.inputRepo.GetByID(f.input.ID)
	assert.True(t, input.CurrentStock.Equal(decimal.NewFromInt(8)),
		"Recalculate reconcilia la proyección contra los lotes")
}

func TestListLowStock(t *testing.T) {
	f := newBatchFixture(t)
	f.createBatch(t, "L-001", "3") // MinStock del fixture es 5

	tx := &fakeTxRunner{batchRepo: f.batchRepo, movRepo: f.movRepo, inputRepo: f.inputRepo}
	aggregator := inventory.NewStockAggregator(tx, f.inputRepo)

	low, err := aggregator.ListLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, f.input.ID, low[0].ID)
}
