package domain

import (
	"strings"
	"time"

	apperror "medstock/internal/errors"
)

// DateLayout é o único formato textual de data aceito: dd/mm/yyyy.
const DateLayout = "02/01/2006"

// maxDateDigits é o número de dígitos de uma data completa (ddmmyyyy).
const maxDateDigits = 8

// DateOf reduz um instante à data de calendário local, representada à meia-noite UTC.
// Todas as comparações de validade usam esta representação.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta o texto estritamente no padrão dd/mm/yyyy.
// Dia ou mês fora do intervalo (e.g. 31/02/2024) também são rejeitados.
func ParseDate(text string) (time.Time, error) {
	// time.Parse aceita ano com sinal ("+024"); a forma é conferida antes.
	if !hasDateShape(text) {
		return time.Time{}, apperror.NewDateFormatError(text, nil)
	}
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, apperror.NewDateFormatError(text, err)
	}
	return t, nil
}

func hasDateShape(text string) bool {
	if len(text) != len(DateLayout) {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if i == 2 || i == 5 {
			if c != '/' {
				return false
			}
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FormatDate formata a data no padrão dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MaskDateInput normaliza a digitação do campo de validade: mantém apenas dígitos
// (no máximo 8) e insere '/' após o dia e o mês quando há dígitos seguintes.
func MaskDateInput(raw string) string {
	digits := make([]rune, 0, maxDateDigits)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == maxDateDigits {
				break
			}
		}
	}

	var b strings.Builder
	for i, r := range digits {
		b.WriteRune(r)
		if (i == 1 || i == 3) && i != len(digits)-1 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
