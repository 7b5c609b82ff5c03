// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package envloader carrega variáveis de ambiente diretamente para campos de
// uma struct Go, usando as tags `env`, `envDefault` e `envRequired`.
//
// Visão Geral:
// O `envloader` é a primeira etapa da configuração do serviço: o pacote
// `pkg/config` declara a struct `Config` com tags e chama `Load`; as referências
// a SSM e Secrets Manager são resolvidas depois, sobre os valores já carregados.
//
// Tipos Suportados:
//   - string, bool, int*, uint*, float*
//   - time.Duration (formato de time.ParseDuration, ex: "10s")
//   - []string (valores separados por vírgula, espaços removidos)
//   - structs aninhadas e ponteiros para struct
//
// Exemplo:
//
//	type Config struct {
//		Table   string        `env:"BOOK_TABLE" envRequired:"true"`
//		Timeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
//		Origins []string      `env:"ALLOWED_ORIGINS" envDefault:"*"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//		var missing *envloader.MissingValueError
//		if errors.As(err, &missing) { /* ... */ }
//	}
package envloader
