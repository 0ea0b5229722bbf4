package dto

// PageRequest paginación del log de auditoría. Las etiquetas validate las aplica el handler
// después de DefaultPage.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage limit 20 si no viene; offset negativo a 0.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse página efectivamente aplicada.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP sin documento asociado.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
