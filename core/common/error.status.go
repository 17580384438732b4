package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Sucesso
	StatusCreated   = 201 // Criado com sucesso
	StatusNoContent = 204 // Sucesso sem conteúdo de retorno

	// Client Error Codes (4xx)
	StatusBadRequest      = 400 // Requisição inválida
	StatusUnauthorized    = 401 // Não autenticado
	StatusForbidden       = 403 // Sem permissão de acesso
	StatusNotFound        = 404 // Recurso não encontrado
	StatusConflict        = 409 // Conflito de dados
	StatusTooManyRequests = 429 // Requisições em excesso

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Erro interno do servidor
	StatusServiceUnavailable  = 503 // Serviço indisponível
)

// Response Messages
const (
	MsgSuccess = "Operação realizada com sucesso"

	MsgBadRequest         = "Requisição inválida"
	MsgUnauthorized       = "Não autorizado"
	MsgNotFound           = "Recurso não encontrado"
	MsgTooManyRequests    = "Muitas requisições, tente novamente mais tarde"
	MsgInternalError      = "Erro interno do servidor"
	MsgServiceUnavailable = "Serviço indisponível"

	MsgTokenMissing = "Token de autenticação ausente"
	MsgTokenInvalid = "API token inválido"

	MsgValidationError = "Dados inválidos"
	MsgDatabaseError   = "Erro ao acessar o banco de dados"
)

// ErrorCode define um código de erro detalhado da aplicação
type ErrorCode struct {
	Code        string // Código (ex: AUTH_001)
	Category    string // Categoria (ex: Authentication)
	SubCategory string // Subcategoria (ex: Token)
	Description string // Descrição detalhada
}

// Códigos de erro organizados por categoria
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Erro interno do sistema",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Erro relacionado ao API token",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Erro nos dados de entrada",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Erro de formato de dados",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Erro geral de banco de dados",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Erro de conexão com o banco de dados",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Erro de consulta ao banco de dados",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusiness = ErrorCode{
		Code:        "BIZ",
		Category:    "Business",
		SubCategory: "General",
		Description: "Erro de regra de negócio",
	}

	// Inference Errors (ML_xxx)
	ErrCodeModelNotReady = ErrorCode{
		Code:        "ML_001",
		Category:    "Inference",
		SubCategory: "Artifact",
		Description: "Artefatos do modelo não carregados",
	}

	ErrCodeUnknownCategory = ErrorCode{
		Code:        "ML_002",
		Category:    "Inference",
		SubCategory: "Encoding",
		Description: "Valor categórico nunca visto no treinamento",
	}
)

// Error é o erro tipado padrão da aplicação
type Error struct {
	Code       ErrorCode // Código de erro detalhado
	Message    string    // Mensagem do erro
	StatusCode int       // HTTP status code
	Details    any       // Informações adicionais
}

// Error retorna a mensagem do erro
func (e *Error) Error() string {
	return e.Message
}

// Is compara erros pelo código e mensagem (suporte a errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError cria um erro tipado com todas as informações
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// ErrNotFound é o erro padrão para dados não encontrados
var ErrNotFound = NewError(ErrCodeDatabaseQuery, "Dados não encontrados", StatusNotFound, nil)

// ConvertMongoError converte erros do driver do MongoDB em erros tipados da
// aplicação. A discriminação usa os tipos/códigos estruturados do driver,
// nunca o texto da mensagem.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeDatabaseQuery, "Registro duplicado", StatusConflict, err.Error())
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return NewError(ErrCodeDatabaseConnection, MsgServiceUnavailable, StatusServiceUnavailable, err.Error())
	}

	return NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, err.Error())
}

// IsIndexConflict verifica pelos códigos estruturados do servidor se o erro é um
// conflito de definição de índice (IndexOptionsConflict=85, IndexKeySpecsConflict=86).
func IsIndexConflict(err error) bool {
	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.HasErrorCode(85) || srvErr.HasErrorCode(86)
	}
	return false
}
