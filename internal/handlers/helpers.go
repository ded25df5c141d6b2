package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barbeariahub/api/internal/httperr"
)

// Mensagens por código de negócio. Códigos fora da tabela viram 500.
var businessMessages = map[string]struct {
	status  int
	message string
}{
	"unauthorized":             {http.StatusUnauthorized, "Não autorizado."},
	"barbearia_not_found":      {http.StatusNotFound, "Barbearia não encontrada."},
	"service_not_found":        {http.StatusBadRequest, "Serviço não encontrado."},
	"service_not_bookable":     {http.StatusBadRequest, "Este serviço não aceita agendamento."},
	"professional_not_found":   {http.StatusBadRequest, "Profissional não encontrado."},
	"client_not_found":         {http.StatusBadRequest, "Cliente não encontrado."},
	"appointment_not_found":    {http.StatusNotFound, "Agendamento não encontrado."},
	"invalid_date_or_time":     {http.StatusBadRequest, "Data ou hora inválida."},
	"too_soon":                 {http.StatusBadRequest, "Horário inválido."},
	"outside_working_hours":    {http.StatusBadRequest, "Fora do horário de atendimento."},
	"time_conflict":            {http.StatusConflict, "Horário já ocupado."},
	"invalid_status":           {http.StatusBadRequest, "Status inválido."},
	"invalid_state":            {http.StatusBadRequest, "Mudança de status inválida."},
	"empty_sale":               {http.StatusBadRequest, "A venda precisa de ao menos um item."},
	"invalid_quantity":         {http.StatusBadRequest, "Quantidade inválida."},
	"invalid_payment_method":   {http.StatusBadRequest, "Forma de pagamento inválida."},
	"invalid_amount":           {http.StatusBadRequest, "Valor inválido."},
	"missing_session_id":       {http.StatusBadRequest, "Sessão não informada."},
	"session_not_found":        {http.StatusNotFound, "Sessão de pagamento não encontrada."},
	"invalid_session_metadata": {http.StatusBadRequest, "Sessão de pagamento inconsistente."},
	"payment_provider_error":   {http.StatusBadGateway, "Falha ao falar com o provedor de pagamento."},
}

// writeBusinessError traduz erros de negócio dos use cases para HTTP;
// qualquer outra coisa é erro interno.
func writeBusinessError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		if m, known := businessMessages[be.Code]; known {
			httperr.Write(c, m.status, be.Code, m.message)
			return
		}
		httperr.BadRequest(c, be.Code, "Operação inválida.")
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}

func parseQueryUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	return uint(v), err
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}
