package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
	"medstock/internal/service/editservice"
)

// Inventory é o que a TUI espera da fachada de estoque.
type Inventory interface {
	View(q domain.ViewQuery) domain.View
	Increment(id domain.MedicineID) (domain.Medicine, error)
	Decrement(id domain.MedicineID) (domain.Medicine, error)
	Delete(id domain.MedicineID) bool
	BeginEdit(id domain.MedicineID) (editservice.Draft, error)
	Commit(d editservice.Draft) (editservice.CommitResult, error)
	Cancel()
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeConfirmDelete
)

const (
	fieldName = iota
	fieldQuantity
	fieldDate
	fieldCount
)

type Model struct {
	inv    Inventory
	logger logger.Logger

	query  domain.ViewQuery
	view   domain.View
	cursor int
	mode   mode
	status string

	inputs  [fieldCount]textinput.Model
	focus   int
	editing bool

	search     textinput.Model
	pendingDel *domain.Medicine
}

// New monta o modelo já com a primeira visão calculada.
func New(inv Inventory, q domain.ViewQuery, logger logger.Logger) Model {
	m := Model{
		inv:    inv,
		logger: logger,
		query:  q,
		status: "Pressione 'a' para adicionar, '/' para buscar, 'q' para sair.",
	}

	placeholders := [fieldCount]string{"Nome do medicamento", "Quantidade", "dd/MM/yyyy"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldQuantity].CharLimit = 9
	m.inputs[fieldDate].CharLimit = len(domain.DateLayout)

	m.search = textinput.New()
	m.search.Placeholder = "Buscar por nome"
	m.search.CharLimit = 64
	m.search.Width = 40

	m.refresh()
	return m
}

// Run inicia o programa bubbletea e bloqueia até o usuário sair.
func Run(inv Inventory, q domain.ViewQuery, logger logger.Logger) error {
	logger.Info("Iniciando interface de terminal.", map[string]interface{}{
		"filter": q.Filter.String(),
		"sort":   q.Sort.String(),
	})

	program := tea.NewProgram(New(inv, q, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("Falha ao executar a interface de terminal.", err)
		return err
	}

	logger.Info("Interface de terminal encerrada com sucesso.", nil)
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		width := max(msg.Width-20, 10)
		for i := range m.inputs {
			m.inputs[i].Width = width
		}
		m.search.Width = width
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.view.Count()-1 {
			m.cursor++
		}
	case "+", "=":
		m.adjust(m.inv.Increment)
	case "-", "_":
		m.adjust(m.inv.Decrement)
	case "a":
		return m.startCreate()
	case "e", "enter":
		return m.startEdit()
	case "d", "delete":
		sel, ok := m.selected()
		if !ok {
			m.status = "Nenhum medicamento selecionado."
			return m, nil
		}
		m.pendingDel = &sel
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("Excluir %q? (y/n)", sel.Name)
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.query.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "s":
		m.query.Sort = m.query.Sort.Next()
		m.refresh()
		m.status = "Ordenação: " + sortLabel(m.query.Sort)
	case "f":
		m.query.Filter = m.query.Filter.Next()
		m.refresh()
		m.status = "Filtro: " + filterLabel(m.query.Filter)
	}
	return m, nil
}

func (m *Model) adjust(fn func(domain.MedicineID) (domain.Medicine, error)) {
	sel, ok := m.selected()
	if !ok {
		m.status = "Nenhum medicamento selecionado."
		return
	}

	med, err := fn(sel.ID)
	if err != nil {
		m.fail(err)
		m.refresh()
		return
	}

	m.refresh()
	m.selectID(med.ID)
	m.status = fmt.Sprintf("%s: %d unidade(s).", med.Name, med.Quantity)
}

func (m Model) startCreate() (tea.Model, tea.Cmd) {
	// Garante que o próximo commit crie em vez de atualizar.
	m.inv.Cancel()
	m.editing = false
	m.fillForm(editservice.Draft{})
	m.mode = modeForm
	m.status = "Novo medicamento: enter salva, esc cancela."
	return m, m.focusField(fieldName)
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	sel, ok := m.selected()
	if !ok {
		m.status = "Nenhum medicamento selecionado."
		return m, nil
	}

	draft, err := m.inv.BeginEdit(sel.ID)
	if err != nil {
		m.fail(err)
		m.refresh()
		return m, nil
	}

	m.editing = true
	m.fillForm(draft)
	m.mode = modeForm
	m.status = fmt.Sprintf("Editando %s: enter salva, esc cancela.", sel.Name)
	return m, m.focusField(fieldName)
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inv.Cancel()
		m.closeForm()
		m.status = "Edição cancelada."
		return m, nil
	case "tab":
		return m, m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		return m.commit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == fieldDate {
		raw := m.inputs[fieldDate].Value()
		if masked := domain.MaskDateInput(raw); masked != raw {
			m.inputs[fieldDate].SetValue(masked)
			m.inputs[fieldDate].CursorEnd()
		}
	}
	return m, cmd
}

func (m Model) commit() (tea.Model, tea.Cmd) {
	draft := editservice.Draft{
		Name:     m.inputs[fieldName].Value(),
		Quantity: m.inputs[fieldQuantity].Value(),
		Date:     m.inputs[fieldDate].Value(),
	}

	result, err := m.inv.Commit(draft)
	if err != nil {
		m.fail(err)
		return m, nil
	}

	switch result.Outcome {
	case editservice.Skipped:
		// Campos obrigatórios vazios: o formulário continua aberto.
		return m, nil
	case editservice.Created:
		m.status = fmt.Sprintf("Medicamento %s adicionado.", result.Medicine.Name)
	case editservice.Updated:
		m.status = fmt.Sprintf("Medicamento %s atualizado.", result.Medicine.Name)
	case editservice.Stale:
		m.status = "O medicamento em edição não existe mais."
	}

	m.closeForm()
	m.refresh()
	if result.Outcome != editservice.Stale {
		m.selectID(result.Medicine.ID)
	}
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case "esc":
		m.search.Reset()
		m.search.Blur()
		m.query.Search = ""
		m.mode = modeList
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query.Search = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Exclusão cancelada."
	case "y", "Y", "s", "S":
		if m.pendingDel == nil {
			m.status = "Nada para excluir."
			break
		}
		if m.inv.Delete(m.pendingDel.ID) {
			m.status = fmt.Sprintf("Medicamento %s excluído.", m.pendingDel.Name)
		} else {
			m.status = "O medicamento já não existe."
		}
		m.refresh()
	default:
		return m, nil
	}

	m.pendingDel = nil
	m.mode = modeList
	return m, nil
}

// refresh pede a visão novamente; chamado após toda alteração ou mudança de consulta.
func (m *Model) refresh() {
	m.view = m.inv.View(m.query)
	m.cursor = clampCursor(m.cursor, m.view.Count())
}

func (m *Model) selectID(id domain.MedicineID) {
	for i, row := range m.view.Rows {
		if row.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() (domain.Medicine, bool) {
	if m.cursor < 0 || m.cursor >= m.view.Count() {
		return domain.Medicine{}, false
	}
	return m.view.Rows[m.cursor].Medicine, true
}

func (m *Model) fillForm(d editservice.Draft) {
	values := [fieldCount]string{d.Name, d.Quantity, d.Date}
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].SetValue(values[i])
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[i].Focus()
}

func (m *Model) closeForm() {
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].Reset()
	}
	m.focus = fieldName
	m.editing = false
	m.mode = modeList
}

func (m *Model) fail(err error) {
	_, msg := apperror.Describe(err)
	m.status = msg
	m.logger.Warn("Operação rejeitada na interface.", map[string]interface{}{"error": err.Error()})
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
