// Package respond padroniza a escrita de respostas HTTP dos handlers.
// O mapeamento de erro para status fica em um único lugar em vez de
// repetido em cada pacote de handler.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// JSON processa o resultado de uma chamada de serviço e envia a resposta
// padronizada ao cliente: o payload com successStatus em caso de sucesso, ou
// o corpo de erro {code, category, message} derivado de MapToHTTPStatus.
func JSON(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				log.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		// Erros de cliente (4xx) não poluem o log de erros.
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}
