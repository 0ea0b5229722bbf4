package avatax

// TruncateItemCode recorta el SKU a MaxItemCodeLength caracteres (runas, no bytes).
func TruncateItemCode(sku string) string {
	r := []rune(sku)
	if len(r) <= MaxItemCodeLength {
		return sku
	}
	return string(r[:MaxItemCodeLength])
}

// SKUOrDefault devuelve el SKU configurado o el SKU por defecto si está vacío.
func SKUOrDefault(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
