package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"sales-forecast/internal/api/models"
	"sales-forecast/internal/model"
	"sales-forecast/internal/scenario"
)

// ErrInvalidInput is returned when an input file fails the same checks the HTTP API applies.
var ErrInvalidInput = errors.New("invalid input")

// LoadStoreWeek reads a /predict-shaped JSON body from path.
func LoadStoreWeek(path string) (model.StoreWeek, error) {
	var req models.StoreWeekRequest
	if err := loadJSON(path, &req); err != nil {
		return model.StoreWeek{}, err
	}
	return req.ToModel(), nil
}

// LoadWhatIf reads a /whatif-shaped JSON body from path.
func LoadWhatIf(path string) (model.StoreWeek, scenario.Adjustments, error) {
	var req models.WhatIfRequest
	if err := loadJSON(path, &req); err != nil {
		return model.StoreWeek{}, scenario.Adjustments{}, err
	}
	return req.ToModel(), req.Adjustments(), nil
}

func loadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := DecodeRequest(raw, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// DecodeRequest decodes raw into v and validates it with the API binding rules.
func DecodeRequest(raw []byte, v any) error {
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(v); err != nil {
		return invalid(err)
	}
	if err := models.Validate(v); err != nil {
		return invalid(err)
	}
	return nil
}

func invalid(err error) error {
	fields := models.FieldErrors(err)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
