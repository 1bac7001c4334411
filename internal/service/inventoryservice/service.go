package inventoryservice

import (
	"fmt"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
	"medstock/internal/service/editservice"
)

// MedicineRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type MedicineRepository interface {
	editservice.MedicineRepository
	Remove(id domain.MedicineID) bool
	IncrementQuantity(id domain.MedicineID, delta int) (domain.Medicine, bool)
	All() []domain.Medicine
}

// ViewService recalcula a visão a partir dos medicamentos atuais.
type ViewService interface {
	View(medicines []domain.Medicine, q domain.ViewQuery) domain.View
}

// EditSession é a sessão de edição usada pelo formulário.
type EditSession interface {
	BeginEdit(id domain.MedicineID) (editservice.Draft, bool)
	Commit(d editservice.Draft) (editservice.CommitResult, error)
	Cancel()
	Editing() (domain.MedicineID, bool)
}

// Service é a fachada chamada pela TUI: cada ação altera o repositório
// e a TUI pede a visão novamente logo em seguida.
type Service struct {
	repo    MedicineRepository
	views   ViewService
	session EditSession
	logger  logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo MedicineRepository, views ViewService, session EditSession, logger logger.Logger) *Service {
	return &Service{repo: repo, views: views, session: session, logger: logger}
}

// View retorna a projeção filtrada, ordenada e totalizada do estoque.
func (s *Service) View(q domain.ViewQuery) domain.View {
	return s.views.View(s.repo.All(), q)
}

// Increment soma uma unidade ao medicamento.
func (s *Service) Increment(id domain.MedicineID) (domain.Medicine, error) {
	return s.adjust(id, 1)
}

// Decrement subtrai uma unidade, nunca abaixo de zero.
func (s *Service) Decrement(id domain.MedicineID) (domain.Medicine, error) {
	return s.adjust(id, -1)
}

func (s *Service) adjust(id domain.MedicineID, delta int) (domain.Medicine, error) {
	s.logger.Debug("Iniciando ajuste de quantidade no serviço.", map[string]interface{}{"id": id.String(), "delta": delta})

	m, ok := s.repo.IncrementQuantity(id, delta)
	if !ok {
		s.logger.Warn("Medicamento não encontrado para ajuste.", map[string]interface{}{"id": id.String()})
		return domain.Medicine{}, apperror.NewNotFoundError(fmt.Sprintf("Medicamento %s não existe.", id))
	}

	s.logger.Info("Quantidade ajustada com sucesso.", map[string]interface{}{"id": id.String(), "name": m.Name, "new_quantity": m.Quantity})
	return m, nil
}

// Delete remove o medicamento (no-op se não existir). Se ele estava em edição,
// a sessão volta para Idle para que o próximo commit não aponte para um handle morto.
func (s *Service) Delete(id domain.MedicineID) bool {
	s.logger.Debug("Iniciando exclusão de medicamento no serviço.", map[string]interface{}{"id": id.String()})

	if editing, ok := s.session.Editing(); ok && editing == id {
		s.session.Cancel()
		s.logger.Info("Edição cancelada: medicamento excluído.", map[string]interface{}{"id": id.String()})
	}

	removed := s.repo.Remove(id)
	if removed {
		s.logger.Info("Medicamento excluído com sucesso.", map[string]interface{}{"id": id.String()})
	}
	return removed
}

// BeginEdit inicia a edição e devolve o rascunho pré-preenchido.
func (s *Service) BeginEdit(id domain.MedicineID) (editservice.Draft, error) {
	draft, ok := s.session.BeginEdit(id)
	if !ok {
		return editservice.Draft{}, apperror.NewNotFoundError(fmt.Sprintf("Medicamento %s não existe.", id))
	}
	return draft, nil
}

// Commit grava o formulário (criação ou edição, conforme a sessão).
func (s *Service) Commit(d editservice.Draft) (editservice.CommitResult, error) {
	result, err := s.session.Commit(d)
	if err != nil {
		return result, err
	}
	s.logger.Debug("Commit concluído.", map[string]interface{}{"outcome": result.Outcome.String()})
	return result, nil
}

// Cancel descarta a edição em andamento.
func (s *Service) Cancel() {
	s.session.Cancel()
}

// Editing informa qual medicamento está em edição, se algum.
func (s *Service) Editing() (domain.MedicineID, bool) {
	return s.session.Editing()
}
