// Package i18n traduce los comentarios que el conector deja en el historial de la orden.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Claves de mensajes (el texto en inglés es la clave y el valor por defecto).
const (
	MsgInvoiceSaved     = "Invoice #%s was saved to AvaTax"
	MsgCreditMemoSaved  = "Credit memo #%s was saved to AvaTax"
	MsgPingFailed       = "AvaTax Rest V2 Error: %q"
	MsgNotAuthenticated = "Not Authorized"
)

var (
	supported = []language.Tag{language.English, language.Spanish}
	matcher   = language.NewMatcher(supported)
	cat       = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		// las claves son constantes; un error aquí es un bug de programación
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
	for _, k := range []string{MsgInvoiceSaved, MsgCreditMemoSaved, MsgPingFailed, MsgNotAuthenticated} {
		set(language.English, k, k)
	}
	set(language.Spanish, MsgInvoiceSaved, "La factura #%s fue guardada en AvaTax")
	set(language.Spanish, MsgCreditMemoSaved, "La nota crédito #%s fue guardada en AvaTax")
	set(language.Spanish, MsgPingFailed, "Error AvaTax Rest V2: %q")
	set(language.Spanish, MsgNotAuthenticated, "No autorizado")
	return b
}

// Printer devuelve un printer para el locale de la tienda ("es_CO", "en-US", ...).
// Locales vacíos o desconocidos caen a inglés.
func Printer(locale string) *message.Printer {
	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return message.NewPrinter(tag, message.Catalog(cat))
}

// Sprintf atajo para traducir una sola clave.
func Sprintf(locale, key string, args ...any) string {
	return Printer(locale).Sprintf(key, args...)
}
