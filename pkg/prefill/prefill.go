// Package prefill overlays values from a user profile onto a form value
// table.
package prefill

// Profile keys accepted in a Mapping.
const (
	KeyLastName            = "last_name"
	KeyFirstName           = "first_name"
	KeyMiddleName          = "middle_name"
	KeyCertificateNumber   = "certificate_number"
	KeyEmail               = "email"
	KeyPhone               = "phone"
	KeyAddress             = "address"
	KeyOrganization        = "organization"
	KeyOrganizationAddress = "organization_address"
)

// Profile is the subset of a user profile that can prefill a form.
type Profile struct {
	LastName            string `json:"last_name" yaml:"last_name"`
	FirstName           string `json:"first_name" yaml:"first_name"`
	MiddleName          string `json:"middle_name" yaml:"middle_name"`
	CertificateNumber   string `json:"certificate_number" yaml:"certificate_number"`
	Email               string `json:"email" yaml:"email"`
	Phone               string `json:"phone" yaml:"phone"`
	Address             string `json:"address" yaml:"address"`
	Organization        string `json:"organization" yaml:"organization"`
	OrganizationAddress string `json:"organization_address" yaml:"organization_address"`
}

// Value returns the profile value stored under key.
func (p Profile) Value(key string) (string, bool) {
	switch key {
	case KeyLastName:
		return p.LastName, true
	case KeyFirstName:
		return p.FirstName, true
	case KeyMiddleName:
		return p.MiddleName, true
	case KeyCertificateNumber:
		return p.CertificateNumber, true
	case KeyEmail:
		return p.Email, true
	case KeyPhone:
		return p.Phone, true
	case KeyAddress:
		return p.Address, true
	case KeyOrganization:
		return p.Organization, true
	case KeyOrganizationAddress:
		return p.OrganizationAddress, true
	default:
		return "", false
	}
}

// Mapping relates field codes to profile keys.
type Mapping map[string]string

// DefaultMapping returns the field codes used by the inspection act
// templates.
func DefaultMapping() Mapping {
	return Mapping{
		"FIO1":         KeyLastName,
		"FIO2":         KeyFirstName,
		"FIO3":         KeyMiddleName,
		"CertN":        KeyCertificateNumber,
		"Organization": KeyOrganization,
		"Phone":        KeyPhone,
		"Email":        KeyEmail,
		"Address":      KeyOrganizationAddress,
	}
}

// Apply returns a copy of values with every mapped profile value written over
// it. Unknown profile keys are ignored; empty profile values still overwrite.
func Apply(values map[string]string, profile Profile, mapping Mapping) map[string]string {
	out := make(map[string]string, len(values)+len(mapping))
	for code, value := range values {
		out[code] = value
	}
	for code, key := range mapping {
		value, ok := profile.Value(key)
		if !ok {
			continue
		}
		out[code] = value
	}
	return out
}
