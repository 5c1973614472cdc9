package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrMissingTenant      = errors.New("tenant no identificado")
	ErrUnknownTenant      = errors.New("tenant desconocido")
	ErrInactiveTenant     = errors.New("tenant inactivo")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPersistence        = errors.New("error de persistencia")
	ErrTimeout            = errors.New("tiempo de espera agotado")
	ErrUpstream           = errors.New("servicio externo no disponible")
)

// NotFoundError identifica qué recurso no existe (o no pertenece al tenant).
// Unwrap devuelve ErrNotFound para que errors.Is siga funcionando.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " no encontrado"
	}
	return e.Resource + " " + e.ID + " no encontrado"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
