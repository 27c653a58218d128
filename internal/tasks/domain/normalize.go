package domain

import (
	"strings"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// NormalizeCreate validates a new task. Priority defaults to medium and
// completed to false.
func NormalizeCreate(in Input) (*Task, error) {
	t := &Task{Completed: in.Completed.Value, Priority: PriorityMedium, DueDate: in.DueDate.Ptr()}

	var err error
	if t.Title, err = title(in.Title); err != nil {
		return nil, err
	}
	if t.Description, err = description(in.Description); err != nil {
		return nil, err
	}
	if in.Priority != nil && strings.TrimSpace(*in.Priority) != "" {
		if t.Priority, err = priority(in.Priority); err != nil {
			return nil, err
		}
	}
	t.Category = payload.Optional(in.Category)
	if t.Color, err = color(in.Color); err != nil {
		return nil, err
	}
	return t, nil
}

// NormalizePatch validates the fields present in an update.
func NormalizePatch(in Input) (Patch, error) {
	var p Patch

	if in.Title != nil {
		t, err := title(in.Title)
		if err != nil {
			return Patch{}, err
		}
		p.Title = &t
	}
	if in.Description != nil {
		d, err := description(in.Description)
		if err != nil {
			return Patch{}, err
		}
		p.Description = payload.OptOf(d)
	}
	if in.DueDate.Set {
		p.DueDate = payload.OptOf(in.DueDate.Ptr())
	}
	if in.Completed.Set {
		v := in.Completed.Value
		p.Completed = &v
	}
	if in.Priority != nil {
		pr, err := priority(in.Priority)
		if err != nil {
			return Patch{}, err
		}
		p.Priority = &pr
	}
	if in.Category != nil {
		p.Category = payload.OptOf(payload.Optional(in.Category))
	}
	if in.Color != nil {
		c, err := color(in.Color)
		if err != nil {
			return Patch{}, err
		}
		p.Color = payload.OptOf(c)
	}
	return p, nil
}

func title(p *string) (string, error) {
	t := payload.Trim(p)
	if t == "" {
		return "", apperr.Validation("El título es requerido")
	}
	if payload.TooLong(t, MaxTitleLength) {
		return "", apperr.Validationf("El título no puede exceder %d caracteres", MaxTitleLength)
	}
	return t, nil
}

func description(p *string) (*string, error) {
	d := payload.Optional(p)
	if d != nil && payload.TooLong(*d, MaxDescriptionLength) {
		return nil, apperr.Validationf("La descripción no puede exceder %d caracteres", MaxDescriptionLength)
	}
	return d, nil
}

func priority(p *string) (Priority, error) {
	pr := Priority(strings.ToLower(payload.Trim(p)))
	if !pr.Valid() {
		return "", apperr.Validation("La prioridad debe ser low, medium o high")
	}
	return pr, nil
}

// color is optional for tasks, but must be a hex code when given.
func color(p *string) (*string, error) {
	c := payload.Optional(p)
	if c != nil && !payload.IsHexColor(*c) {
		return nil, apperr.Validation("El color debe ser un código hexadecimal válido")
	}
	return c, nil
}
