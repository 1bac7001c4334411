package inventoryservice_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
	"medstock/internal/repository/medicinerepo"
	"medstock/internal/service/editservice"
	"medstock/internal/service/inventoryservice"
	"medstock/internal/service/viewservice"
)

var fixedToday = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *medicinerepo.Repository
	session *editservice.Session
	svc     *inventoryservice.Service
}

func newFixture() fixture {
	log := logger.NewNop()
	repo := medicinerepo.NewRepository(log)
	session := editservice.NewSession(repo, editservice.Options{}, log)
	views := viewservice.NewService(viewservice.DefaultOptions(), log).
		WithClock(func() time.Time { return fixedToday })
	return fixture{
		repo:    repo,
		session: session,
		svc:     inventoryservice.NewService(repo, views, session, log),
	}
}

func (f fixture) add(t *testing.T, name string, qty int, exp string) domain.Medicine {
	t.Helper()
	result, err := f.svc.Commit(editservice.Draft{Name: name, Quantity: strconv.Itoa(qty), Date: exp})
	require.NoError(t, err)
	require.Equal(t, editservice.Created, result.Outcome)
	return result.Medicine
}

func TestView_ReflectsMutations(t *testing.T) {
	f := newFixture()
	a := f.add(t, "Aspirina", 2, "01/01/2026")
	f.add(t, "Dipirona", 5, "01/01/2020")

	v := f.svc.View(domain.ViewQuery{})
	assert.Equal(t, 7, v.Total)

	_, err := f.svc.Increment(a.ID)
	require.NoError(t, err)
	v = f.svc.View(domain.ViewQuery{Filter: domain.FilterActive})
	require.Len(t, v.Rows, 1)
	assert.Equal(t, 3, v.Total)

	assert.True(t, f.svc.Delete(a.ID))
	v = f.svc.View(domain.ViewQuery{})
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 1, v.Size)
}

func TestDecrement_ClampsAtZero(t *testing.T) {
	f := newFixture()
	a := f.add(t, "Aspirina", 0, "01/01/2026")

	m, err := f.svc.Decrement(a.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, m.Quantity)
}

func TestAdjust_UnknownReturnsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Increment(uuid.New())

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestDelete_WhileEditingCancelsSession(t *testing.T) {
	f := newFixture()
	a := f.add(t, "Aspirina", 2, "01/01/2026")
	b := f.add(t, "Dipirona", 5, "01/01/2026")

	_, err := f.svc.BeginEdit(a.ID)
	require.NoError(t, err)

	// Excluir outro medicamento não afeta a edição.
	f.svc.Delete(b.ID)
	id, editing := f.svc.Editing()
	require.True(t, editing)
	assert.Equal(t, a.ID, id)

	f.svc.Delete(a.ID)
	_, editing = f.svc.Editing()
	assert.False(t, editing)

	// O próximo commit cria em vez de tentar atualizar um handle morto.
	result, err := f.svc.Commit(editservice.Draft{Name: "Nova", Quantity: "1", Date: "01/01/2026"})
	require.NoError(t, err)
	assert.Equal(t, editservice.Created, result.Outcome)
}

func TestDelete_UnknownIsNoOp(t *testing.T) {
	f := newFixture()
	f.add(t, "Aspirina", 2, "01/01/2026")

	assert.False(t, f.svc.Delete(uuid.New()))
	assert.Equal(t, 1, f.repo.Len())
}

func TestBeginEdit_UnknownReturnsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BeginEdit(uuid.New())

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestEditFlow_UpdatesInPlace(t *testing.T) {
	f := newFixture()
	a := f.add(t, "Aspirina", 2, "01/01/2026")

	draft, err := f.svc.BeginEdit(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "01/01/2026", draft.Date)

	draft.Quantity = "9"
	result, err := f.svc.Commit(draft)
	require.NoError(t, err)
	assert.Equal(t, editservice.Updated, result.Outcome)

	v := f.svc.View(domain.ViewQuery{})
	require.Len(t, v.Rows, 1)
	assert.Equal(t, a.ID, v.Rows[0].ID)
	assert.Equal(t, 9, v.Rows[0].Quantity)
}

func TestCommit_PropagatesDateError(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Commit(editservice.Draft{Name: "X", Quantity: "1", Date: "31/02/2024"})

	assert.True(t, apperror.IsInvalidDateFormat(err))
	assert.Equal(t, 0, f.repo.Len())
}

// MockViewService permite verificar que a visão recebe o estado atual do repositório.
type MockViewService struct {
	mock.Mock
}

func (m *MockViewService) View(medicines []domain.Medicine, q domain.ViewQuery) domain.View {
	args := m.Called(medicines, q)
	return args.Get(0).(domain.View)
}

func TestView_DelegatesRepositorySnapshot(t *testing.T) {
	log := logger.NewNop()
	repo := medicinerepo.NewRepository(log)
	m, err := repo.Add(domain.MedicineFields{Name: "A", Quantity: 1, Expiration: fixedToday})
	require.NoError(t, err)
	views := new(MockViewService)
	q := domain.ViewQuery{Search: "a", Sort: domain.SortByExpiration}
	expected := domain.View{Total: 1, Size: 1}
	views.On("View", []domain.Medicine{m}, q).Return(expected).Once()

	svc := inventoryservice.NewService(repo, views, editservice.NewSession(repo, editservice.Options{}, log), log)

	assert.Equal(t, expected, svc.View(q))
	views.AssertExpectations(t)
}
