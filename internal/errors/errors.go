package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError é a interface central para todos os erros customizados do medstock.
// Ela permite que o código externo (TUI, serviços) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "INVALID_DATE_FORMAT")
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Categorias expostas para a camada de apresentação.
const (
	CategoryValidation        = "VALIDATION_ERROR"
	CategoryInvalidDateFormat = "INVALID_DATE_FORMAT"
	CategoryNotFound          = "NOT_FOUND"
	CategoryInternal          = "INTERNAL_ERROR"
	CategoryUnknown           = "UNKNOWN_ERROR"
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return CategoryValidation }
func (e *ValidationError) Unwrap() error    { return nil } // Não encapsula erro subjacente

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewFieldValidationError cria um erro de validação associado a um campo do formulário.
func NewFieldValidationError(field, msg string) AppError {
	return &ValidationError{Field: field, Msg: msg}
}

// DateFormatError é sinalizado quando o texto de data não segue o padrão dd/mm/yyyy.
// Bloqueia o commit e nunca altera estado.
type DateFormatError struct {
	Input string
	Err   error // Erro original do pacote time
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("Formato de data inválido! Use dd/MM/yyyy (recebido %q)", e.Input)
}
func (e *DateFormatError) Category() string { return CategoryInvalidDateFormat }
func (e *DateFormatError) Unwrap() error    { return e.Err }

// NewDateFormatError cria um erro de formato de data.
func NewDateFormatError(input string, err error) AppError {
	return &DateFormatError{Input: input, Err: err}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return CategoryNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no serviço ou repositório.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return CategoryInternal }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro interno (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// IsInvalidDateFormat informa se algum erro da cadeia é um DateFormatError.
func IsInvalidDateFormat(err error) bool {
	var dateErr *DateFormatError
	return stderrors.As(err, &dateErr)
}

// IsValidation informa se algum erro da cadeia é um ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return stderrors.As(err, &validationErr)
}

// --- Helper para a camada de apresentação (Tradução Final) ---

// Describe recebe um erro e o traduz para categoria e mensagem exibíveis na linha de status.
func Describe(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var appErr AppError
	if stderrors.As(err, &appErr) {
		switch e := appErr.(type) {
		case *DateFormatError:
			// A mensagem ao usuário não repete a entrada, apenas o padrão esperado.
			return e.Category(), "Formato de data inválido! Use dd/MM/yyyy"
		case *ValidationError:
			return e.Category(), e.Msg
		case *NotFoundError:
			return e.Category(), e.Msg
		}
		return appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratado como erro genérico.
	return CategoryUnknown, "Ocorreu um erro inesperado."
}
