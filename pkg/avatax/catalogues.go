// Package avatax contiene constantes del protocolo AvaTax REST v2 y los valores
// por defecto que usa el conector cuando la tienda no configura un SKU propio.
package avatax

// =============================================================================
// SKUs y descripciones por defecto de las líneas auxiliares
// =============================================================================

const (
	DefaultShippingSKU         = "Shipping"
	DefaultShippingDescription = "Shipping costs"

	DefaultGwOrderSKU         = "GwOrderAmount"
	DefaultGwOrderDescription = "Gift Wrap Order Amount"

	DefaultGwItemsSKU         = "GwItemsAmount"
	DefaultGwItemsDescription = "Gift Wrap Items Amount"

	DefaultGwPrintedCardSKU         = "GwPrintedCardAmount"
	DefaultGwPrintedCardDescription = "Gift Wrap Printed Card Amount"

	DefaultPositiveAdjustmentSKU         = "positive-adjustment"
	DefaultPositiveAdjustmentDescription = "Adjustment refund"

	DefaultNegativeAdjustmentSKU         = "negative-adjustment"
	DefaultNegativeAdjustmentDescription = "Adjustment fee"
)

// MaxItemCodeLength longitud máxima de itemCode aceptada por AvaTax.
const MaxItemCodeLength = 50

// =============================================================================
// Códigos de resultado (SeverityLevel)
// =============================================================================

const (
	ResultSuccess   = "Success"
	ResultError     = "Error"
	ResultException = "Exception" // sintetizado localmente cuando la llamada lanza error
)

// =============================================================================
// Tipos de transacción
// =============================================================================

const (
	TransactionSalesInvoice  = "SalesInvoice"
	TransactionReturnInvoice = "ReturnInvoice"
)

// ServiceDateFormat formato de fechas esperado por el WS (yyyy-MM-dd).
const ServiceDateFormat = "2006-01-02"

// Categorías del log de auditoría.
const (
	LogCategoryTransaction = "Transaction"
	LogCategoryPing        = "Ping"
)

// Niveles del log de auditoría.
const (
	LogLevelSuccess = "Success"
	LogLevelError   = "Error"
)
