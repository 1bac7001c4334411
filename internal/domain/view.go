package domain

import (
	"fmt"
	"strings"
)

// FilterMode seleciona os medicamentos pela situação da validade.
type FilterMode int

const (
	FilterAll     FilterMode = iota // Todos
	FilterExpired                   // Vencidos: validade < hoje
	FilterActive                    // Ativos: validade >= hoje
)

var filterModeNames = []string{"all", "expired", "active"}

func (f FilterMode) String() string {
	if f < 0 || int(f) >= len(filterModeNames) {
		return fmt.Sprintf("FilterMode(%d)", int(f))
	}
	return filterModeNames[f]
}

// Next retorna o próximo modo, em ciclo (usado pela TUI).
func (f FilterMode) Next() FilterMode {
	return FilterMode((int(f) + 1) % len(filterModeNames))
}

// ParseFilterMode aceita o nome do modo sem diferenciar maiúsculas.
func ParseFilterMode(s string) (FilterMode, error) {
	for i, name := range filterModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return FilterMode(i), nil
		}
	}
	return FilterAll, fmt.Errorf("modo de filtro desconhecido: %q", s)
}

// SortMode define a ordenação da visão.
type SortMode int

const (
	SortByName       SortMode = iota // Nome, lexicográfico e sensível a maiúsculas
	SortByQuantity                   // Quantidade, crescente
	SortByExpiration                 // Validade, cronológica
)

var sortModeNames = []string{"name", "quantity", "expiration"}

func (s SortMode) String() string {
	if s < 0 || int(s) >= len(sortModeNames) {
		return fmt.Sprintf("SortMode(%d)", int(s))
	}
	return sortModeNames[s]
}

// Next retorna o próximo modo, em ciclo (usado pela TUI).
func (s SortMode) Next() SortMode {
	return SortMode((int(s) + 1) % len(sortModeNames))
}

// ParseSortMode aceita o nome do modo sem diferenciar maiúsculas.
func ParseSortMode(s string) (SortMode, error) {
	for i, name := range sortModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return SortMode(i), nil
		}
	}
	return SortByName, fmt.Errorf("modo de ordenação desconhecido: %q", s)
}

// ViewQuery reúne os parâmetros de busca, filtro e ordenação escolhidos na TUI.
type ViewQuery struct {
	Search string
	Filter FilterMode
	Sort   SortMode
}

// ViewRow é um medicamento exibido, com as marcações de apresentação.
type ViewRow struct {
	Medicine
	LowStock     bool // Quantidade abaixo do limite configurado
	ExpiringSoon bool // Ainda válido, mas vence dentro da janela configurada
	Expired      bool
}

// View é a projeção filtrada e ordenada do repositório, com o total agregado.
type View struct {
	Rows  []ViewRow
	Total int // Soma das quantidades das linhas exibidas
	Size  int // Quantidade de medicamentos antes dos filtros
}

// Count retorna o número de linhas exibidas.
func (v View) Count() int {
	return len(v.Rows)
}

// Medicines retorna apenas os medicamentos, na ordem da visão.
func (v View) Medicines() []Medicine {
	out := make([]Medicine, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Medicine
	}
	return out
}
