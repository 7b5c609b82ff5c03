// Package dyndb fornece uma abstração genérica e fortemente tipada sobre o
// AWS DynamoDB Go SDK (v2).
//
// Visão Geral:
// O pacote `dyndb` oferece a interface `Store[T]`, que simplifica as operações
// CRUD e Batch, eliminando a necessidade de lidar diretamente com os tipos
// de baixo nível do SDK do DynamoDB (AttributeValue, etc.).
//
// Funcionalidades Principais:
//   - CRUD Tipado: `Get`, `Exists`, `Put`, `Update` e `Delete` usando tipos Go nativos.
//   - Escritas Condicionais: `IfAbsent()` e `IfPresent()`; uma
//     condição rejeitada pelo DynamoDB retorna `ErrConditionFailed`.
//   - Batch: `BatchWrite` em blocos de 25, reenviando `UnprocessedItems`.
//   - Scan: `Scan().All(ctx)` segue o `LastEvaluatedKey` até a última página.
//   - Mock Integrado: `MockDynamoClient` para testes unitários.
//
// Exemplo Básico:
//
//	type Item struct {
//		PK    string `dynamodbav:"pk"`
//		SK    string `dynamodbav:"sk"`
//		Title string `dynamodbav:"title"`
//	}
//
//	store := dyndb.New(client, dyndb.TableConfig[Item]{TableName: "Items", HashKey: "pk", SortKey: "sk"})
//
//	// Cria somente se a chave ainda não existir
//	err := store.Put(ctx, Item{PK: "a", SK: "a", Title: "x"}, dyndb.IfAbsent())
//	if errors.Is(err, dyndb.ErrConditionFailed) { /* ... */ }
//
//	// Atualização parcial condicionada à existência
//	upd := expression.Set(expression.Name("title"), expression.Value("y"))
//	err = store.Update(ctx, "a", "a", upd, dyndb.IfPresent())
//
//	// Todas as páginas
//	items, err := store.Scan().All(ctx)
//
// Configuração:
// O Store é configurado via `TableConfig[T]`; quando `TableName` vem vazio, os campos
// são lidos das variáveis de ambiente `DYNAMODB_*` através do envloader.
package dyndb
