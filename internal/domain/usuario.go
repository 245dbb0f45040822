package domain

// Rol es el rol del usuario autenticado en el back-office.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolOperador Rol = "operador"
)

// Usuario es el perfil que devuelve el backend al iniciar sesión.
type Usuario struct {
	ID     string `json:"_id"`
	Nombre string `json:"name"`
	Correo string `json:"email"`
	Rol    Rol    `json:"role"`
}

// EsAdmin indica si el usuario tiene rol de administrador.
func (u Usuario) EsAdmin() bool {
	return u.Rol == RolAdmin
}

// EsOperadorOAdmin indica si el usuario puede operar el back-office.
func (u Usuario) EsOperadorOAdmin() bool {
	return u.Rol == RolAdmin || u.Rol == RolOperador
}

// Credencial agrupa el token y el perfil de usuario. Invariante: se guardan y
// se borran juntos; nunca existe un perfil sin token.
type Credencial struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"user"`
}
