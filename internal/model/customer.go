package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer is read-mostly reference data used to validate checkout input
// and enrich order views.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CPF       string    `json:"cpf" db:"cpf"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeCPF strips formatting and validates the CPF check digits.
// All-same-digit sequences pass the check-digit math but are not valid
// documents, so they are rejected up front.
func NormalizeCPF(cpf string) (string, error) {
	clean := nonDigits.ReplaceAllString(cpf, "")
	if len(clean) != 11 || strings.Count(clean, string(clean[0])) == 11 {
		return "", ErrInvalidCPF
	}
	if cpfDigit(clean, 9) != int(clean[9]-'0') || cpfDigit(clean, 10) != int(clean[10]-'0') {
		return "", ErrInvalidCPF
	}
	return clean, nil
}

// cpfDigit computes the check digit verified at position pos.
func cpfDigit(cpf string, pos int) int {
	sum := 0
	for i := 0; i < pos; i++ {
		sum += int(cpf[i]-'0') * (pos + 1 - i)
	}
	d := (sum * 10) % 11
	if d == 10 {
		d = 0
	}
	return d
}
