// Package validate aplica las reglas locales del formulario de reserva.
// Todo "válido" local es una optimización de UX: el chequeo autoritativo
// siempre es el del backend al crear la reserva.
package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const FormatoFecha = "2006-01-02"

// EstadiaMaximaNoches es el largo máximo de estadía aceptado.
const EstadiaMaximaNoches = 30

var (
	reNombre   = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]{2,}$`)
	reCorreo   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reDNI      = regexp.MustCompile(`^\d{7,8}$`)
	reTelefono = regexp.MustCompile(`^[0-9+()\-\.\s]+$`)
	reDigito   = regexp.MustCompile(`[0-9]`)
)

// FormularioHuesped son los campos que captura la página de reserva.
type FormularioHuesped struct {
	Nombre         string `form:"nombre" json:"nombre" validate:"required,nombre"`
	Apellido       string `form:"apellido" json:"apellido" validate:"required,nombre"`
	Correo         string `form:"correo" json:"correo" validate:"required,correo"`
	DNI            string `form:"dni" json:"dni" validate:"required,dni"`
	Telefono       string `form:"telefono" json:"telefono" validate:"required,telefono"`
	FechaEntrada   string `form:"fechaEntrada" json:"fechaEntrada" validate:"required"`
	FechaSalida    string `form:"fechaSalida" json:"fechaSalida" validate:"required"`
	NumeroPersonas int    `form:"numeroPersonas" json:"numeroPersonas" validate:"min=1"`
	Observaciones  string `form:"observaciones" json:"observaciones"`
}

// Validador envuelve una única instancia de validator con las reglas del
// hotel registradas.
type Validador struct {
	interno *validator.Validate
}

// New registra los validadores propios (nombre, correo, dni, telefono) sobre
// una instancia nueva.
func New() *Validador {
	v := validator.New()
	v.RegisterValidation("nombre", func(fl validator.FieldLevel) bool {
		return ValidarNombre(fl.Field().String())
	})
	v.RegisterValidation("correo", func(fl validator.FieldLevel) bool {
		return ValidarCorreo(fl.Field().String())
	})
	v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return ValidarDNI(fl.Field().String())
	})
	v.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		return ValidarTelefono(fl.Field().String())
	})
	return &Validador{interno: v}
}

// ValidarNombre acepta letras (incluyendo acentos latinos) y espacios, con
// un mínimo de dos caracteres.
func ValidarNombre(nombre string) bool {
	return reNombre.MatchString(strings.TrimSpace(nombre))
}

// ValidarCorreo acepta la forma local@dominio.tld.
func ValidarCorreo(correo string) bool {
	return reCorreo.MatchString(correo)
}

// ValidarDNI acepta exactamente 7 u 8 dígitos tras quitar los puntos
// separadores.
func ValidarDNI(dni string) bool {
	return reDNI.MatchString(strings.ReplaceAll(dni, ".", ""))
}

// ValidarTelefono acepta dígitos más `+ ( ) - .` y espacios.
func ValidarTelefono(telefono string) bool {
	return reTelefono.MatchString(telefono) && reDigito.MatchString(telefono)
}

// Validar corre las reglas de campos y de fechas y devuelve los errores por
// campo con mensajes listos para mostrar. hoy debe ser el día calendario
// local ya truncado.
func (v *Validador) Validar(f FormularioHuesped, hoy time.Time) map[string]string {
	errores := make(map[string]string)

	if err := v.interno.Struct(f); err != nil {
		var faltas validator.ValidationErrors
		if ve, ok := err.(validator.ValidationErrors); ok {
			faltas = ve
		}
		for _, falta := range faltas {
			campo, mensaje := mensajeDeCampo(falta)
			if _, ya := errores[campo]; !ya {
				errores[campo] = mensaje
			}
		}
	}

	for campo, mensaje := range ValidarFechas(f.FechaEntrada, f.FechaSalida, hoy) {
		errores[campo] = mensaje
	}
	return errores
}

// ValidarFechas aplica las reglas de calendario: entrada no anterior a hoy,
// salida estrictamente posterior a la entrada, estadía de hasta 30 noches.
// Fechas ilegibles o ausentes se reportan en su campo.
func ValidarFechas(fechaEntrada, fechaSalida string, hoy time.Time) map[string]string {
	errores := make(map[string]string)

	var entrada, salida time.Time
	var err error

	if fechaEntrada != "" {
		entrada, err = time.ParseInLocation(FormatoFecha, fechaEntrada, hoy.Location())
		if err != nil {
			errores["fechaEntrada"] = "Ingresa una fecha de entrada válida"
		} else if entrada.Before(hoy) {
			errores["fechaEntrada"] = "La fecha de entrada no puede ser en el pasado"
		}
	}

	if fechaEntrada != "" && fechaSalida != "" {
		salida, err = time.ParseInLocation(FormatoFecha, fechaSalida, hoy.Location())
		switch {
		case err != nil:
			errores["fechaSalida"] = "Ingresa una fecha de salida válida"
		case !salida.After(entrada):
			errores["fechaSalida"] = "La fecha de salida debe ser posterior a la de entrada"
		case Noches(fechaEntrada, fechaSalida) > EstadiaMaximaNoches:
			errores["fechaSalida"] = "La estadía no puede superar los 30 días"
		}
	}
	return errores
}

// Noches calcula las noches entre dos fechas YYYY-MM-DD; cero si alguna es
// ilegible o el rango es inválido.
func Noches(fechaEntrada, fechaSalida string) int {
	entrada, err1 := time.Parse(FormatoFecha, fechaEntrada)
	salida, err2 := time.Parse(FormatoFecha, fechaSalida)
	if err1 != nil || err2 != nil {
		return 0
	}
	noches := int(salida.Sub(entrada).Hours() / 24)
	if noches < 0 {
		return 0
	}
	return noches
}

func mensajeDeCampo(falta validator.FieldError) (string, string) {
	switch falta.StructField() {
	case "Nombre":
		if falta.Tag() == "required" {
			return "nombre", "El nombre es requerido"
		}
		return "nombre", "Ingresa un nombre válido (solo letras)"
	case "Apellido":
		if falta.Tag() == "required" {
			return "apellido", "El apellido es requerido"
		}
		return "apellido", "Ingresa un apellido válido (solo letras)"
	case "Correo":
		if falta.Tag() == "required" {
			return "correo", "El correo es requerido"
		}
		return "correo", "Ingresa un correo válido"
	case "DNI":
		if falta.Tag() == "required" {
			return "dni", "El DNI es requerido"
		}
		return "dni", "Ingresa un DNI válido (7-8 dígitos)"
	case "Telefono":
		if falta.Tag() == "required" {
			return "telefono", "El teléfono es requerido"
		}
		return "telefono", "Ingresa un teléfono válido"
	case "FechaEntrada":
		return "fechaEntrada", "La fecha de entrada es requerida"
	case "FechaSalida":
		return "fechaSalida", "La fecha de salida es requerida"
	case "NumeroPersonas":
		return "numeroPersonas", "Indica cuántas personas se hospedan"
	}
	return falta.StructField(), "Valor inválido"
}
