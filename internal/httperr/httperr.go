package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// ============================================================
// Business error → HTTP
// ============================================================

type mapping struct {
	status  int
	message string
}

var businessMappings = map[string]mapping{
	"appointment_not_found":  {http.StatusNotFound, "Agendamento não encontrado."},
	"professional_not_found": {http.StatusNotFound, "Profissional não encontrado."},
	"service_not_found":      {http.StatusNotFound, "Serviço não encontrado."},
	"client_not_found":       {http.StatusNotFound, "Cliente não encontrado."},

	"forbidden": {http.StatusForbidden, "Você não tem permissão para gerenciar esta agenda."},

	"slot_conflict":          {http.StatusConflict, "Já existe um agendamento neste horário."},
	"override_cap_exceeded":  {http.StatusConflict, "Limite diário de encaixes atingido."},
	"invalid_transition":     {http.StatusConflict, "Transição de status não permitida."},
	"professional_inactive":  {http.StatusConflict, "Profissional inativo."},
	"lock_unavailable":       {http.StatusConflict, "Agenda ocupada, tente novamente."},

	"schedule_not_configured": {http.StatusBadRequest, "Horário de trabalho não configurado para este dia."},
	"outside_working_hours":   {http.StatusBadRequest, "Horário fora do expediente."},
	"on_break":                {http.StatusBadRequest, "Horário coincide com um intervalo."},
	"time_off":                {http.StatusBadRequest, "Profissional de folga nesta data."},
	"start_in_past":           {http.StatusBadRequest, "Não é possível agendar no passado."},
	"invalid_duration":        {http.StatusBadRequest, "Duração inválida."},
	"invalid_date":            {http.StatusBadRequest, "Data inválida."},
	"invalid_status":          {http.StatusBadRequest, "Status inválido."},
	"invalid_recurrence":      {http.StatusBadRequest, "Recorrência inválida."},
	"invalid_working_hours":   {http.StatusBadRequest, "Horário de trabalho inválido."},
	"invalid_exception":       {http.StatusBadRequest, "Exceção de agenda inválida."},
}

// FromError writes err as a JSON error. Business errors map to their
// status; anything else is a 500 carrying fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	var be BusinessError
	if errors.As(err, &be) {
		if m, known := businessMappings[be.Code]; known {
			c.JSON(m.status, HTTPError{Code: be.Code, Message: m.message, Detail: be.Message})
			return
		}
		BadRequest(c, be.Code, be.Error())
		return
	}

	if IsExclusionConflict(err) {
		Conflict(c, "slot_conflict", businessMappings["slot_conflict"].message)
		return
	}

	Internal(c, fallbackCode, "Erro interno.")
}
