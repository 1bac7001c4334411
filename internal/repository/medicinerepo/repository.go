package medicinerepo

import (
	"slices"

	"github.com/google/uuid"

	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
)

// Repository é a coleção ordenada, em memória, que possui todos os medicamentos.
// A ordem de inserção é mantida, mas a ordem exibida é sempre recalculada pela visão.
// Não é seguro para uso concorrente: apenas o laço de eventos da TUI o acessa.
type Repository struct {
	medicines []domain.Medicine
	logger    logger.Logger
}

// NewRepository cria e retorna uma nova instância do Repositório de Medicamentos.
func NewRepository(logger logger.Logger) *Repository {
	return &Repository{
		medicines: []domain.Medicine{},
		logger:    logger,
	}
}

// Add valida as invariantes, emite um novo handle e anexa o medicamento.
func (r *Repository) Add(fields domain.MedicineFields) (domain.Medicine, error) {
	r.logger.Debug("Iniciando Add no repositório.", map[string]interface{}{"name": fields.Name})

	if err := fields.Validate(); err != nil {
		r.logger.Warn("Medicamento rejeitado pela validação.", map[string]interface{}{"name": fields.Name, "error": err.Error()})
		return domain.Medicine{}, err
	}

	m := domain.Medicine{
		ID:         uuid.New(),
		Name:       fields.Name,
		Quantity:   fields.Quantity,
		Expiration: domain.DateOf(fields.Expiration),
	}
	r.medicines = append(r.medicines, m)

	r.logger.Info("Medicamento adicionado com sucesso.", map[string]interface{}{"id": m.ID.String(), "name": m.Name, "total_medicines": len(r.medicines)})
	return m, nil
}

// Remove exclui o medicamento referenciado. Handle desconhecido é um no-op (retorna false).
func (r *Repository) Remove(id domain.MedicineID) bool {
	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug("Medicamento não encontrado para exclusão.", map[string]interface{}{"id": id.String()})
		return false
	}

	r.medicines = slices.Delete(r.medicines, i, i+1)
	r.logger.Info("Medicamento removido com sucesso.", map[string]interface{}{"id": id.String(), "total_medicines": len(r.medicines)})
	return true
}

// Update altera nome, quantidade e validade no lugar, preservando o handle.
// Handle desconhecido é um no-op (false, nil); campos inválidos retornam ValidationError.
func (r *Repository) Update(id domain.MedicineID, fields domain.MedicineFields) (domain.Medicine, bool, error) {
	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug("Medicamento não encontrado para atualização.", map[string]interface{}{"id": id.String()})
		return domain.Medicine{}, false, nil
	}

	if err := fields.Validate(); err != nil {
		r.logger.Warn("Atualização rejeitada pela validação.", map[string]interface{}{"id": id.String(), "error": err.Error()})
		return domain.Medicine{}, true, err
	}

	m := &r.medicines[i]
	m.Name = fields.Name
	m.Quantity = fields.Quantity
	m.Expiration = domain.DateOf(fields.Expiration)

	r.logger.Info("Medicamento atualizado com sucesso.", map[string]interface{}{"id": id.String(), "name": m.Name, "quantity": m.Quantity})
	return *m, true, nil
}

// IncrementQuantity soma delta à quantidade, limitando em zero por baixo (sem limite superior).
func (r *Repository) IncrementQuantity(id domain.MedicineID, delta int) (domain.Medicine, bool) {
	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug("Medicamento não encontrado para ajuste de quantidade.", map[string]interface{}{"id": id.String(), "delta": delta})
		return domain.Medicine{}, false
	}

	m := &r.medicines[i]
	newQuantity := m.Quantity + delta
	if newQuantity < 0 {
		r.logger.Debug("Ajuste resultaria em quantidade negativa; limitando em zero.", map[string]interface{}{"id": id.String(), "current_quantity": m.Quantity, "delta": delta})
		newQuantity = 0
	}
	m.Quantity = newQuantity

	r.logger.Debug("Quantidade ajustada.", map[string]interface{}{"id": id.String(), "new_quantity": m.Quantity})
	return *m, true
}

// FindByID busca um medicamento pelo handle.
func (r *Repository) FindByID(id domain.MedicineID) (domain.Medicine, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return domain.Medicine{}, false
	}
	return r.medicines[i], true
}

// All retorna uma cópia dos medicamentos, em ordem de inserção.
func (r *Repository) All() []domain.Medicine {
	return slices.Clone(r.medicines)
}

// Len retorna o número de medicamentos armazenados.
func (r *Repository) Len() int {
	return len(r.medicines)
}

func (r *Repository) indexOf(id domain.MedicineID) int {
	return slices.IndexFunc(r.medicines, func(m domain.Medicine) bool { return m.ID == id })
}
