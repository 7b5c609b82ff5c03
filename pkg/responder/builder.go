package responder

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	jsoniter "github.com/json-iterator/go"
	"github.com/raywall/book-service/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Headers fixos de toda resposta.
const (
	HeaderContentType = "Content-Type"
	HeaderAllowOrigin = "Access-Control-Allow-Origin"
	contentTypeJSON   = "application/json"
)

// ErrorBody é o envelope de erro: {"error":{"code","description"}}.
type ErrorBody struct {
	Error *book.Error `json:"error"`
}

// ResponseBuilder monta as respostas API Gateway v2 com o contrato de status,
// corpo e CORS do serviço.
type ResponseBuilder struct {
	allowedOrigin string
}

func NewResponseBuilder(allowedOrigin string) *ResponseBuilder {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return &ResponseBuilder{allowedOrigin: allowedOrigin}
}

// AllowedOrigin devolve a origem anunciada em Access-Control-Allow-Origin.
func (rb *ResponseBuilder) AllowedOrigin() string {
	return rb.allowedOrigin
}

func (rb *ResponseBuilder) headers(withBody bool) map[string]string {
	h := map[string]string{HeaderAllowOrigin: rb.allowedOrigin}
	if withBody {
		h[HeaderContentType] = contentTypeJSON
	}
	return h
}

// OK serializa body com status 200.
func (rb *ResponseBuilder) OK(body any) events.APIGatewayV2HTTPResponse {
	return rb.JSON(http.StatusOK, body)
}

// NoContent é a resposta das escritas bem sucedidas.
func (rb *ResponseBuilder) NoContent() events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusNoContent,
		Headers:    rb.headers(false),
	}
}

// JSON serializa body com o status informado. Falha de serialização vira 500.
func (rb *ResponseBuilder) JSON(status int, body any) events.APIGatewayV2HTTPResponse {
	data, err := json.Marshal(body)
	if err != nil {
		return rb.fallback(book.NewInternalServerError(err))
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    rb.headers(true),
		Body:       string(data),
	}
}

func (rb *ResponseBuilder) BadRequest(description string) events.APIGatewayV2HTTPResponse {
	return rb.Error(book.NewBadRequest(description))
}

func (rb *ResponseBuilder) NotFound(description string) events.APIGatewayV2HTTPResponse {
	return rb.Error(book.NewNotFound(description))
}

func (rb *ResponseBuilder) InternalServerError(cause error) events.APIGatewayV2HTTPResponse {
	return rb.Error(book.NewInternalServerError(cause))
}

// Error converte qualquer erro no envelope com o status do seu código.
func (rb *ResponseBuilder) Error(err error) events.APIGatewayV2HTTPResponse {
	e := book.AsError(err)
	if e == nil {
		e = book.NewInternalServerError(nil)
	}
	return rb.JSON(StatusOf(e.Code), ErrorBody{Error: e})
}

// StatusOf mapeia o código de erro para o status HTTP.
func StatusOf(code book.ErrorCode) int {
	switch code {
	case book.CodeBadRequest:
		return http.StatusBadRequest
	case book.CodeNotFound:
		return http.StatusNotFound
	case book.CodeInternalServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// fallback monta o 500 à mão para não depender do encoder que acabou de falhar.
func (rb *ResponseBuilder) fallback(e *book.Error) events.APIGatewayV2HTTPResponse {
	desc, _ := json.MarshalToString(e.Description)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    rb.headers(true),
		Body:       `{"error":{"code":"` + string(e.Code) + `","description":` + desc + `}}`,
	}
}
