// Package bookservice é uma API CRUD serverless de livros: Lambda atrás de um
// API Gateway HTTP API, persistindo numa tabela única do DynamoDB.
//
// Visão Geral:
// Cada requisição percorre transport → controller → use case → storage driver e
// volta pelo mesmo caminho; o controller valida o formato da entrada, o use case
// confere a existência do livro e traduz as falhas do driver para a taxonomia
// de erros (BadRequest, NotFound, InternalServerError).
//
// Pacotes:
//
// 1. book:
//   - Modelo (BookTitle, BasicBook, BasicBookWithDate, chave composta "book|<id>").
//   - Validação de id e título, também registrada como tags do validator/v10.
//   - Erro tagueado {code, description}.
//
// 2. dyndb:
//   - Store[T] genérico sobre o aws-sdk-go-v2: CRUD, escritas condicionais,
//     BatchWrite e Scan paginado.
//
// 3. envloader:
//   - Preenche structs a partir das tags "env", "envDefault" e "envRequired".
//
// 4. pkg/:
//   - storage (contrato + drivers dynamo e memory), usecase, controller, responder.
//   - app (composição e tabela de rotas) e transport (Lambda e servidor local).
//   - config, logger, metrics, observability e seed.
//
// Binários:
//
//	cmd/server    RUNTIME=lambda inicia lambda.Start; RUNTIME=local sobe o servidor gorilla/mux
//	cmd/booktool  seed, list e check-config
//
// Exemplo de execução local:
//
//	RUNTIME=local BOOK_STORAGE=memory LOG_FORMAT=console go run ./cmd/server
//	curl -X POST localhost:8080/books -d '{"book_title":"dune"}'
//	curl localhost:8080/books
package bookservice
