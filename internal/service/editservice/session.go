package editservice

import (
	"strconv"
	"strings"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
)

// MedicineRepository define o contrato que a sessão de edição espera da camada de Persistência.
type MedicineRepository interface {
	Add(fields domain.MedicineFields) (domain.Medicine, error)
	Update(id domain.MedicineID, fields domain.MedicineFields) (domain.Medicine, bool, error)
	FindByID(id domain.MedicineID) (domain.Medicine, bool)
}

// State indica se o próximo commit cria um medicamento ou edita um existente.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Draft são os textos crus do formulário (nome, quantidade, validade).
type Draft struct {
	Name     string
	Quantity string
	Date     string
}

// Outcome descreve o efeito de um commit.
type Outcome int

const (
	Skipped Outcome = iota // Nome ou data vazios: "ainda não pronto", nada muda
	Created
	Updated
	Stale // O medicamento em edição não existe mais; nada muda
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Stale:
		return "stale"
	default:
		return "skipped"
	}
}

// CommitResult é o retorno de um commit bem-sucedido (ou silenciosamente ignorado).
type CommitResult struct {
	Outcome  Outcome
	Medicine domain.Medicine
}

// Options ajusta a validação do commit.
type Options struct {
	// StrictQuantity rejeita quantidade inválida com ValidationError
	// em vez de assumir 0.
	StrictQuantity bool
}

// Session é a máquina de estados Idle | Editing(id).
type Session struct {
	repo    MedicineRepository
	opts    Options
	logger  logger.Logger
	state   State
	editing domain.MedicineID
}

// NewSession cria uma sessão no estado Idle.
func NewSession(repo MedicineRepository, opts Options, logger logger.Logger) *Session {
	return &Session{repo: repo, opts: opts, logger: logger}
}

// State retorna o estado atual.
func (s *Session) State() State {
	return s.state
}

// Editing retorna o handle em edição, se houver.
func (s *Session) Editing() (domain.MedicineID, bool) {
	if s.state != Editing {
		return domain.MedicineID{}, false
	}
	return s.editing, true
}

// BeginEdit entra em Editing(id) e devolve os textos para pré-preencher o formulário.
// Handle desconhecido mantém o estado atual e retorna false.
func (s *Session) BeginEdit(id domain.MedicineID) (Draft, bool) {
	m, ok := s.repo.FindByID(id)
	if !ok {
		s.logger.Warn("Medicamento não encontrado para edição.", map[string]interface{}{"id": id.String()})
		return Draft{}, false
	}

	s.state = Editing
	s.editing = id
	s.logger.Debug("Edição iniciada.", map[string]interface{}{"id": id.String(), "name": m.Name})

	return Draft{
		Name:     m.Name,
		Quantity: strconv.Itoa(m.Quantity),
		Date:     domain.FormatDate(m.Expiration),
	}, true
}

// Cancel descarta a edição em andamento sem alterar o medicamento referenciado.
func (s *Session) Cancel() {
	if s.state == Editing {
		s.logger.Debug("Edição cancelada.", map[string]interface{}{"id": s.editing.String()})
	}
	s.reset()
}

// Commit valida os textos e grava no repositório.
// Nome ou data vazios abortam em silêncio; data fora do padrão retorna DateFormatError.
// Em ambos os casos nada é alterado e o estado da sessão é mantido.
func (s *Session) Commit(d Draft) (CommitResult, error) {
	if strings.TrimSpace(d.Name) == "" || d.Date == "" {
		s.logger.Debug("Commit ignorado: campos obrigatórios vazios.", map[string]interface{}{"state": s.state.String()})
		return CommitResult{Outcome: Skipped}, nil
	}

	expiration, err := domain.ParseDate(d.Date)
	if err != nil {
		s.logger.Warn("Commit rejeitado: formato de data inválido.", map[string]interface{}{"date": d.Date})
		return CommitResult{}, err
	}

	quantity, err := s.parseQuantity(d.Quantity)
	if err != nil {
		s.logger.Warn("Commit rejeitado: quantidade inválida.", map[string]interface{}{"quantity": d.Quantity})
		return CommitResult{}, err
	}

	fields := domain.MedicineFields{Name: d.Name, Quantity: quantity, Expiration: expiration}

	if s.state == Editing {
		return s.commitUpdate(fields)
	}

	created, err := s.repo.Add(fields)
	if err != nil {
		s.logger.Error("Falha ao adicionar medicamento no repositório.", err)
		return CommitResult{}, err
	}
	s.logger.Info("Medicamento criado pela sessão de edição.", map[string]interface{}{"id": created.ID.String(), "name": created.Name})
	return CommitResult{Outcome: Created, Medicine: created}, nil
}

func (s *Session) commitUpdate(fields domain.MedicineFields) (CommitResult, error) {
	id := s.editing

	updated, found, err := s.repo.Update(id, fields)
	if err != nil {
		s.logger.Error("Falha ao atualizar medicamento no repositório.", err)
		return CommitResult{}, err
	}

	s.reset()
	if !found {
		s.logger.Warn("Medicamento em edição não existe mais; commit descartado.", map[string]interface{}{"id": id.String()})
		return CommitResult{Outcome: Stale}, nil
	}

	s.logger.Info("Medicamento atualizado pela sessão de edição.", map[string]interface{}{"id": id.String(), "name": updated.Name})
	return CommitResult{Outcome: Updated, Medicine: updated}, nil
}

// parseQuantity aplica o fallback silencioso para 0, exceto em modo estrito.
func (s *Session) parseQuantity(text string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(text))
	if err == nil && q >= 0 {
		return q, nil
	}
	if s.opts.StrictQuantity {
		return 0, apperror.NewFieldValidationError("quantity", "A quantidade deve ser um número inteiro não negativo.")
	}
	s.logger.Debug("Quantidade inválida substituída por 0.", map[string]interface{}{"quantity": text})
	return 0, nil
}

func (s *Session) reset() {
	s.state = Idle
	s.editing = domain.MedicineID{}
}
