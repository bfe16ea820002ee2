package features

import (
	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

// Encoder maps categorical string values to dense integer codes. Codes are
// assigned in first-observed order at fit time and persisted as an explicit
// value list per column, so the bijection survives save/load unchanged.
// Read-only after Fit/restore.
type Encoder struct {
	vocab map[string][]string
	index map[string]map[string]int
}

// NewEncoder creates an unfitted encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// RestoreEncoder rebuilds a fitted encoder from persisted vocabularies
func RestoreEncoder(vocabularies map[string][]string) *Encoder {
	enc := &Encoder{
		vocab: make(map[string][]string, len(vocabularies)),
		index: make(map[string]map[string]int, len(vocabularies)),
	}
	for col, values := range vocabularies {
		enc.vocab[col] = append([]string(nil), values...)
		idx := make(map[string]int, len(values))
		for code, value := range values {
			idx[value] = code
		}
		enc.index[col] = idx
	}
	return enc
}

// Fit assigns codes 0..k-1 per categorical column in the order values are
// first observed across the training records
func (e *Encoder) Fit(records []supplier.Record) {
	e.vocab = make(map[string][]string, len(supplier.CategoricalColumns))
	e.index = make(map[string]map[string]int, len(supplier.CategoricalColumns))

	for _, col := range supplier.CategoricalColumns {
		e.index[col] = make(map[string]int)
	}

	for _, rec := range records {
		for _, col := range supplier.CategoricalColumns {
			value := rec.Categorical(col)
			if value == "" {
				continue
			}
			if _, seen := e.index[col][value]; !seen {
				e.index[col][value] = len(e.vocab[col])
				e.vocab[col] = append(e.vocab[col], value)
			}
		}
	}
}

// Fitted reports whether the encoder holds vocabularies
func (e *Encoder) Fitted() bool {
	return e.index != nil
}

// Vocabularies returns a copy of the per-column value lists (index = code)
func (e *Encoder) Vocabularies() map[string][]string {
	cp := make(map[string][]string, len(e.vocab))
	for col, values := range e.vocab {
		cp[col] = append([]string(nil), values...)
	}
	return cp
}

// Encode looks up the code of every categorical column of the record and
// returns the encoded feature columns. A value outside the fitted vocabulary
// is an explicit UnknownCategoryError naming column and value; it is never
// silently assigned a code. A missing value is a MissingFieldError.
func (e *Encoder) Encode(rec supplier.Record) (map[string]float64, error) {
	if !e.Fitted() {
		return nil, errors.NewNotLoadedError("categorical encoder")
	}

	encoded := make(map[string]float64, len(supplier.CategoricalColumns))
	for _, col := range supplier.CategoricalColumns {
		value := rec.Categorical(col)
		if value == "" {
			return nil, errors.NewMissingFieldError(col)
		}
		code, ok := e.index[col][value]
		if !ok {
			return nil, errors.NewUnknownCategoryError(col, value)
		}
		encoded[col+EncodedSuffix] = float64(code)
	}
	return encoded, nil
}

// Decode returns the original string value for a column code
func (e *Encoder) Decode(column string, code int) (string, error) {
	if !e.Fitted() {
		return "", errors.NewNotLoadedError("categorical encoder")
	}
	values, ok := e.vocab[column]
	if !ok {
		return "", errors.NewValidationError("no vocabulary for column "+column, column, "")
	}
	if code < 0 || code >= len(values) {
		return "", errors.NewValidationError("code out of range for column "+column, column, "")
	}
	return values[code], nil
}
