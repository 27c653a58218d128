package domain

import (
	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

const MaxNameLength = 50

// NormalizeCreate validates a new category; both fields are required.
func NormalizeCreate(in Input) (name, color string, err error) {
	name, err = normalizeName(in.Name)
	if err != nil {
		return "", "", err
	}
	color, err = normalizeColor(in.Color)
	if err != nil {
		return "", "", err
	}
	return name, color, nil
}

// NormalizeUpdate validates the fields present in an update.
func NormalizeUpdate(in Input) (Changes, error) {
	var ch Changes
	if in.Name != nil {
		name, err := normalizeName(in.Name)
		if err != nil {
			return Changes{}, err
		}
		ch.Name = &name
	}
	if in.Color != nil {
		color, err := normalizeColor(in.Color)
		if err != nil {
			return Changes{}, err
		}
		ch.Color = &color
	}
	return ch, nil
}

func normalizeName(p *string) (string, error) {
	name := payload.Trim(p)
	if name == "" {
		return "", apperr.Validation("El nombre es requerido")
	}
	if payload.TooLong(name, MaxNameLength) {
		return "", apperr.Validationf("El nombre no puede exceder %d caracteres", MaxNameLength)
	}
	return name, nil
}

func normalizeColor(p *string) (string, error) {
	color := payload.Trim(p)
	if color == "" {
		return "", apperr.Validation("El color es requerido")
	}
	if !payload.IsHexColor(color) {
		return "", apperr.Validation("El color debe ser un código hexadecimal válido")
	}
	return color, nil
}
