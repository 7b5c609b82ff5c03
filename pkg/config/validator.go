package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *Config) error {
	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *Config) error {
	if cfg.Service.Storage == StorageDynamoDB && cfg.Table.Name == "" {
		return errors.New("BOOK_TABLE é obrigatório quando BOOK_STORAGE=dynamodb")
	}

	if cfg.Service.IsLocal() && cfg.HTTP.Port == 0 {
		return errors.New("PORT é obrigatório quando RUNTIME=local")
	}

	// O browser rejeita credenciais com origem curinga
	if cfg.Service.AllowedOrigin != "*" && strings.Contains(cfg.Service.AllowedOrigin, "*") {
		return fmt.Errorf("ALLOWED_ORIGIN inválido: '%s'. Use '*' ou uma origem completa", cfg.Service.AllowedOrigin)
	}

	return nil
}
