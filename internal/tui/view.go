package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"medstock/internal/domain"
)

const nameWidth = 28

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	lowStockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	expiringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	expiredStyle  = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#B22222"))
	statusStyle   = lipgloss.NewStyle().Italic(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	formStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Estoque de Medicamentos"))
	b.WriteString("\n")
	b.WriteString(m.renderQuery())
	b.WriteString("\n\n")

	if m.view.Count() == 0 {
		if m.view.Size == 0 {
			b.WriteString("Nenhum medicamento cadastrado. Pressione 'a' para adicionar.")
		} else {
			b.WriteString("Nenhum medicamento corresponde à busca.")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d    %d de %d", m.view.Total, m.view.Count(), m.view.Size))
	b.WriteString("\n")

	switch m.mode {
	case modeForm:
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	case modeSearch:
		b.WriteString("\nBuscar: ")
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.mode)))

	return b.String()
}

func (m Model) renderQuery() string {
	search := m.query.Search
	if search == "" {
		search = "-"
	}
	return headerStyle.Render(fmt.Sprintf("Busca: %s • Filtro: %s • Ordem: %s",
		search, filterLabel(m.query.Filter), sortLabel(m.query.Sort)))
}

func (m Model) renderTable() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %10s  %-10s", nameWidth, "Nome", "Quantidade", "Validade")))
	b.WriteString("\n")

	for i, row := range m.view.Rows {
		cursor := " "
		name := fmt.Sprintf("%-*s", nameWidth, truncate(row.Name, nameWidth))
		if i == m.cursor && m.mode != modeForm {
			cursor = ">"
			name = selectedStyle.Render(name)
		}

		qty := fmt.Sprintf("%10d", row.Quantity)
		if row.LowStock {
			qty = lowStockStyle.Render(qty)
		}

		date := domain.FormatDate(row.Expiration)
		var tag string
		switch {
		case row.Expired:
			date = expiredStyle.Render(date)
			tag = " vencido"
		case row.ExpiringSoon:
			date = expiringStyle.Render(date)
			tag = " vence em breve"
		}

		b.WriteString(fmt.Sprintf("%s %s %s  %s%s\n", cursor, name, qty, date, tag))
	}
	return b.String()
}

func (m Model) renderForm() string {
	title := "Novo medicamento"
	if m.editing {
		title = "Editar medicamento"
	}

	labels := [fieldCount]string{"Nome", "Quantidade", "Validade"}
	var b strings.Builder
	b.WriteString(title)
	for i, input := range m.inputs {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-11s %s", labels[i]+":", input.View()))
	}
	return formStyle.Render(b.String())
}

func renderHelp(md mode) string {
	switch md {
	case modeForm:
		return "tab/shift+tab campo • enter salvar • esc cancelar"
	case modeSearch:
		return "digite para filtrar • enter confirmar • esc limpar"
	case modeConfirmDelete:
		return "y confirmar • n cancelar"
	default:
		return "↑/↓ mover • +/- quantidade • a adicionar • e editar • d excluir • / buscar • s ordem • f filtro • q sair"
	}
}

func filterLabel(f domain.FilterMode) string {
	switch f {
	case domain.FilterExpired:
		return "Vencidos"
	case domain.FilterActive:
		return "Ativos"
	default:
		return "Todos"
	}
}

func sortLabel(s domain.SortMode) string {
	switch s {
	case domain.SortByQuantity:
		return "Quantidade"
	case domain.SortByExpiration:
		return "Validade"
	default:
		return "Nome"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
