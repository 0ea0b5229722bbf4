package entity

// Address dirección postal usada como origen (tienda) o destino (orden).
type Address struct {
	Line1      string
	Line2      string
	Line3      string
	City       string
	Region     string // código de región/estado (ej. "WA")
	PostalCode string
	Country    string // ISO 3166-1 alfa-2
}

// IsEmpty true cuando la dirección no tiene ningún dato útil para AvaTax.
func (a *Address) IsEmpty() bool {
	if a == nil {
		return true
	}
	return a.Line1 == "" && a.City == "" && a.PostalCode == "" && a.Country == ""
}
