package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/httperr"
)

var businessMessages = map[string]string{
	"professional_not_found": "Profissional não encontrado",
	"service_not_found":      "Serviço não encontrado",
	"service_inactive":       "Serviço indisponível",
	"appointment_not_found":  "Agendamento não encontrado",
	"slot_unavailable":       "Horário indisponível",
	"invalid_transition":     "Mudança de status inválida",
	"missing_client_fields":  "Nome e telefone do cliente são obrigatórios",
	"address_required":       "Endereço é obrigatório para este serviço",
	"invalid_date_or_time":   "Data ou horário inválido",
}

// writeBusinessError translates a business error code into the HTTP status
// the public API documents. Unknown errors fall through to 500.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", businessMessages["appointment_not_found"])
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno")
		return
	}

	msg, ok := businessMessages[code]
	if !ok {
		msg = code
	}

	switch code {
	case "professional_not_found", "service_not_found", "appointment_not_found":
		httperr.NotFound(c, code, msg)
	case "slot_unavailable", "invalid_transition":
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
