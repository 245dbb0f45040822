package domain

// Consulta es un mensaje enviado desde el formulario de contacto. Se entrega
// por correo al hotel; no se persiste en esta capa.
type Consulta struct {
	Nombre   string `json:"nombre"`
	Correo   string `json:"correo"`
	Telefono string `json:"telefono"`
	Asunto   string `json:"asunto"`
	Mensaje  string `json:"mensaje"`
}
