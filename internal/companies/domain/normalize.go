package domain

import (
	"strings"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

const (
	MaxNameLength    = 200
	MaxTaxIDLength   = 50
	MaxAddressLength = 500
)

// Normalize validates a full company payload; PUT replaces every field.
func Normalize(in Input) (Fields, error) {
	var f Fields

	f.Name = payload.Trim(in.Name)
	if f.Name == "" {
		return Fields{}, apperr.Validation("El nombre de la empresa es requerido")
	}
	if payload.TooLong(f.Name, MaxNameLength) {
		return Fields{}, apperr.Validationf("El nombre no puede exceder %d caracteres", MaxNameLength)
	}

	f.Country = payload.Trim(in.Country)
	if f.Country == "" {
		return Fields{}, apperr.Validation("El país es requerido")
	}
	f.Phone = payload.Trim(in.Phone)
	if f.Phone == "" {
		return Fields{}, apperr.Validation("El número de teléfono es requerido")
	}

	f.TaxID = payload.Optional(in.TaxID)
	if f.TaxID != nil && payload.TooLong(*f.TaxID, MaxTaxIDLength) {
		return Fields{}, apperr.Validationf("El NIT no puede exceder %d caracteres", MaxTaxIDLength)
	}
	f.Address = payload.Optional(in.Address)
	if f.Address != nil && payload.TooLong(*f.Address, MaxAddressLength) {
		return Fields{}, apperr.Validationf("La dirección no puede exceder %d caracteres", MaxAddressLength)
	}

	if email := payload.Optional(in.Email); email != nil {
		v := strings.ToLower(*email)
		if !payload.IsEmail(v) {
			return Fields{}, apperr.Validation("El correo electrónico no es válido")
		}
		f.Email = &v
	}
	f.Website = payload.Optional(in.Website)
	if f.Website != nil && !payload.IsHTTPURL(*f.Website) {
		return Fields{}, apperr.Validation("La URL del sitio web debe comenzar con http:// o https://")
	}
	f.Logo = payload.Optional(in.Logo)
	if f.Logo != nil && !payload.IsHTTPURL(*f.Logo) {
		return Fields{}, apperr.Validation("La URL del logo debe comenzar con http:// o https://")
	}
	return f, nil
}
