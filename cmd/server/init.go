package main

import (
	"github.com/CauanS29/DataPlane/core/global"
)

// InitGlobal inicializa o estado compartilhado do processo. Hoje o único item
// é o validador de DTOs; novas inicializações de processo entram aqui.
func InitGlobal() {
	global.InitValidator()
}
