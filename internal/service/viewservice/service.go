package viewservice

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
)

// Limites padrão das marcações de apresentação.
const (
	DefaultLowStockThreshold = 5
	DefaultExpiringSoonDays  = 7
)

// Options controla as marcações LowStock e ExpiringSoon de cada linha.
type Options struct {
	LowStockThreshold int // Quantidade abaixo deste valor é estoque baixo
	ExpiringSoonDays  int // Validade dentro desta janela (a partir de hoje) vence em breve
}

// DefaultOptions retorna os limites usados pela aplicação original.
func DefaultOptions() Options {
	return Options{
		LowStockThreshold: DefaultLowStockThreshold,
		ExpiringSoonDays:  DefaultExpiringSoonDays,
	}
}

// Compute é o motor de consulta: filtra por busca e por modo, ordena de forma estável
// e soma as quantidades do resultado filtrado. É pura e reentrante.
func Compute(medicines []domain.Medicine, q domain.ViewQuery, today time.Time, opts Options) domain.View {
	today = domain.DateOf(today)
	search := strings.ToLower(q.Search)
	soonLimit := today.AddDate(0, 0, opts.ExpiringSoonDays)

	rows := make([]domain.ViewRow, 0, len(medicines))
	for _, m := range medicines {
		if !matchesSearch(m, search) || !matchesFilter(m, q.Filter, today) {
			continue
		}
		expired := m.Expiration.Before(today)
		rows = append(rows, domain.ViewRow{
			Medicine:     m,
			LowStock:     m.Quantity < opts.LowStockThreshold,
			ExpiringSoon: !expired && m.Expiration.Before(soonLimit),
			Expired:      expired,
		})
	}

	slices.SortStableFunc(rows, comparator(q.Sort))

	total := 0
	for _, r := range rows {
		total += r.Quantity
	}

	return domain.View{Rows: rows, Total: total, Size: len(medicines)}
}

func matchesSearch(m domain.Medicine, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), lowered)
}

func matchesFilter(m domain.Medicine, mode domain.FilterMode, today time.Time) bool {
	switch mode {
	case domain.FilterExpired:
		return m.Expiration.Before(today)
	case domain.FilterActive:
		return !m.Expiration.Before(today)
	default:
		return true
	}
}

func comparator(mode domain.SortMode) func(a, b domain.ViewRow) int {
	switch mode {
	case domain.SortByQuantity:
		return func(a, b domain.ViewRow) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case domain.SortByExpiration:
		return func(a, b domain.ViewRow) int { return a.Expiration.Compare(b.Expiration) }
	default:
		return func(a, b domain.ViewRow) int { return strings.Compare(a.Name, b.Name) }
	}
}

// Service recalcula a visão lendo "hoje" do relógio a cada chamada (nunca em cache).
type Service struct {
	now    func() time.Time
	opts   Options
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Visão.
func NewService(opts Options, logger logger.Logger) *Service {
	return &Service{now: time.Now, opts: opts, logger: logger}
}

// WithClock substitui o relógio (usado em testes para fixar "hoje").
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// View aplica a consulta sobre os medicamentos informados.
func (s *Service) View(medicines []domain.Medicine, q domain.ViewQuery) domain.View {
	view := Compute(medicines, q, s.now(), s.opts)

	s.logger.Debug("Visão recalculada.", map[string]interface{}{
		"search": q.Search,
		"filter": q.Filter.String(),
		"sort":   q.Sort.String(),
		"shown":  view.Count(),
		"size":   view.Size,
		"total":  view.Total,
	})
	return view
}
