package checkout

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

var ErrValidation = errors.New("validation failed")

var phonePattern = regexp.MustCompile(`^[0-9]{10,13}$`)

const (
	msgNameRequired    = "Nama harus diisi"
	msgPhoneRequired   = "Nomor handphone harus diisi"
	msgPhoneInvalid    = "Nomor handphone tidak valid"
	msgAddressRequired = "Alamat pengiriman harus diisi"
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ValidationError maps form fields to the message shown under each of them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks the checkout form. Notes are free text and never fail.
func Validate(c Customer) error {
	fields := map[string]string{}

	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = msgNameRequired
	}

	phone := strings.TrimSpace(c.Phone)
	switch {
	case phone == "":
		fields["phone"] = msgPhoneRequired
	case !phonePattern.MatchString(phone):
		fields["phone"] = msgPhoneInvalid
	}

	if strings.TrimSpace(c.Address) == "" {
		fields["address"] = msgAddressRequired
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
