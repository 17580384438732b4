package global

import (
	"github.com/go-playground/validator/v10"
)

// Validate é o validador compartilhado de structs de entrada (DTOs).
// É inicializado uma vez na subida do processo.
var Validate *validator.Validate

// InitValidator inicializa o validador compartilhado
func InitValidator() {
	Validate = validator.New()
}
