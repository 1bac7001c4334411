package medicinerepo_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
	"medstock/internal/repository/medicinerepo"
)

func newTestRepo() *medicinerepo.Repository {
	return medicinerepo.NewRepository(logger.NewNop())
}

func fields(name string, qty int) domain.MedicineFields {
	return domain.MedicineFields{
		Name:       name,
		Quantity:   qty,
		Expiration: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdd_Success(t *testing.T) {
	repo := newTestRepo()

	m, err := repo.Add(fields("Aspirina", 12))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "Aspirina", m.Name)
	assert.Equal(t, 12, m.Quantity)
	assert.Equal(t, 1, repo.Len())

	found, ok := repo.FindByID(m.ID)
	require.True(t, ok)
	assert.Equal(t, m, found)
}

func TestAdd_NormalisesExpirationToDate(t *testing.T) {
	repo := newTestRepo()
	f := fields("Aspirina", 1)
	f.Expiration = time.Date(2026, time.March, 1, 18, 45, 0, 0, time.UTC)

	m, err := repo.Add(f)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), m.Expiration)
}

func TestAdd_Fail_Validation(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.Add(fields("", 1))
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = repo.Add(fields("Aspirina", -1))
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = repo.Add(domain.MedicineFields{Name: "Aspirina", Quantity: 1})
	assert.IsType(t, &apperror.ValidationError{}, err)

	assert.Equal(t, 0, repo.Len())
}

func TestAdd_DuplicateNamesHaveDistinctIdentity(t *testing.T) {
	repo := newTestRepo()

	a, err := repo.Add(fields("Paracetamol", 1))
	require.NoError(t, err)
	b, err := repo.Add(fields("Paracetamol", 1))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, repo.Len())
}

func TestRemove_IsIdempotent(t *testing.T) {
	repo := newTestRepo()
	a, _ := repo.Add(fields("A", 1))
	b, _ := repo.Add(fields("B", 2))

	assert.True(t, repo.Remove(a.ID))
	assert.False(t, repo.Remove(a.ID))
	assert.False(t, repo.Remove(uuid.New()))

	all := repo.All()
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	repo := newTestRepo()
	a, _ := repo.Add(fields("A", 1))
	_, _ = repo.Add(fields("B", 2))

	updated, ok, err := repo.Update(a.ID, fields("A2", 7))

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, 2, repo.Len())
	assert.Equal(t, a.ID, repo.All()[0].ID, "posição de inserção mantida")
}

func TestUpdate_UnknownIsNoOp(t *testing.T) {
	repo := newTestRepo()
	_, _ = repo.Add(fields("A", 1))

	_, ok, err := repo.Update(uuid.New(), fields("Z", 9))

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "A", repo.All()[0].Name)
}

func TestUpdate_InvalidFieldsLeaveEntryUntouched(t *testing.T) {
	repo := newTestRepo()
	a, _ := repo.Add(fields("A", 1))

	_, ok, err := repo.Update(a.ID, fields("A", -5))

	assert.True(t, ok)
	assert.IsType(t, &apperror.ValidationError{}, err)
	found, _ := repo.FindByID(a.ID)
	assert.Equal(t, 1, found.Quantity)
}

func TestIncrementQuantity_ClampsAtZero(t *testing.T) {
	repo := newTestRepo()
	a, _ := repo.Add(fields("A", 0))

	m, ok := repo.IncrementQuantity(a.ID, -1)
	require.True(t, ok)
	assert.Equal(t, 0, m.Quantity)

	m, _ = repo.IncrementQuantity(a.ID, 1)
	assert.Equal(t, 1, m.Quantity)

	m, _ = repo.IncrementQuantity(a.ID, -10)
	assert.Equal(t, 0, m.Quantity)

	_, ok = repo.IncrementQuantity(uuid.New(), 1)
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	repo := newTestRepo()
	a, _ := repo.Add(fields("A", 3))

	all := repo.All()
	all[0].Quantity = 99

	found, _ := repo.FindByID(a.ID)
	assert.Equal(t, 3, found.Quantity)
}

// TestRandomSequences_SizeAndQuantityInvariants exercita sequências aleatórias de operações.
func TestRandomSequences_SizeAndQuantityInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	repo := newTestRepo()
	var ids []domain.MedicineID
	adds, removes := 0, 0

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || len(ids) == 0:
			m, err := repo.Add(fields("M", rng.Intn(5)))
			require.NoError(t, err)
			ids = append(ids, m.ID)
			adds++
		case op == 1:
			i := rng.Intn(len(ids))
			if repo.Remove(ids[i]) {
				removes++
			}
			ids = append(ids[:i], ids[i+1:]...)
		case op == 2:
			_, _, err := repo.Update(ids[rng.Intn(len(ids))], fields("U", rng.Intn(10)))
			require.NoError(t, err)
		default:
			repo.IncrementQuantity(ids[rng.Intn(len(ids))], rng.Intn(5)-3)
		}

		require.Equal(t, adds-removes, repo.Len())
		for _, m := range repo.All() {
			require.GreaterOrEqual(t, m.Quantity, 0)
		}
	}
}
