package injector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Prefixos de referência aceitos em campos string.
// Ex: BOOK_TABLE=ssm:/book-service/table, DD_AGENT_HOST=secretsmanager:book/dd#host
const (
	PrefixSSM    = "ssm:"
	PrefixSecret = "secretsmanager:"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Injector substitui referências de SSM e Secrets Manager pelos seus valores.
type Injector struct {
	ssm     SSMClient
	secrets SecretsClient
	cache   map[string]string
}

func New(ssmClient SSMClient, secretsClient SecretsClient) *Injector {
	return &Injector{
		ssm:     ssmClient,
		secrets: secretsClient,
		cache:   make(map[string]string),
	}
}

// IsReference indica se o valor aponta para SSM ou Secrets Manager
func IsReference(value string) bool {
	return strings.HasPrefix(value, PrefixSSM) || strings.HasPrefix(value, PrefixSecret)
}

// HasReferences percorre target e indica se algum campo string é uma referência
func HasReferences(target any) bool {
	found := false
	walkStrings(reflect.ValueOf(target), func(v reflect.Value) error {
		if IsReference(v.String()) {
			found = true
		}
		return nil
	})
	return found
}

// Inject resolve in-place todas as referências encontradas em target
func (i *Injector) Inject(ctx context.Context, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.New("target deve ser um ponteiro para struct não nulo")
	}
	return walkStrings(v, func(field reflect.Value) error {
		if !IsReference(field.String()) {
			return nil
		}
		resolved, err := i.Resolve(ctx, field.String())
		if err != nil {
			return err
		}
		field.SetString(resolved)
		return nil
	})
}

// Resolve devolve o valor de uma única referência; valores comuns voltam intactos
func (i *Injector) Resolve(ctx context.Context, ref string) (string, error) {
	if cached, ok := i.cache[ref]; ok {
		return cached, nil
	}

	var (
		val string
		err error
	)
	switch {
	case strings.HasPrefix(ref, PrefixSSM):
		val, err = i.fetchParameter(ctx, strings.TrimPrefix(ref, PrefixSSM))
	case strings.HasPrefix(ref, PrefixSecret):
		id, key, _ := strings.Cut(strings.TrimPrefix(ref, PrefixSecret), "#")
		val, err = i.fetchSecret(ctx, id, key)
	default:
		return ref, nil
	}
	if err != nil {
		return "", err
	}

	i.cache[ref] = val
	return val, nil
}

func (i *Injector) fetchParameter(ctx context.Context, name string) (string, error) {
	if i.ssm == nil {
		return "", fmt.Errorf("referência ssm:%s sem cliente SSM configurado", name)
	}
	out, err := i.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM %s sem valor", name)
	}
	return *out.Parameter.Value, nil
}

// fetchSecret aceita id#chave para extrair um campo de um segredo JSON
func (i *Injector) fetchSecret(ctx context.Context, id, key string) (string, error) {
	if i.secrets == nil {
		return "", fmt.Errorf("referência secretsmanager:%s sem cliente Secrets Manager configurado", id)
	}
	out, err := i.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", id)
	}

	val := *out.SecretString
	if key == "" {
		return val, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("segredo %s não é um objeto JSON: %w", id, err)
	}
	field, ok := data[key]
	if !ok {
		return "", fmt.Errorf("segredo %s não contém a chave %q", id, key)
	}
	return fmt.Sprintf("%v", field), nil
}

// walkStrings visita os campos string graváveis de structs, ponteiros e slices
func walkStrings(v reflect.Value, visit func(reflect.Value) error) error {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			return walkStrings(v.Elem(), visit)
		}

	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			if !v.Type().Field(k).IsExported() {
				continue
			}
			if err := walkStrings(v.Field(k), visit); err != nil {
				return err
			}
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := walkStrings(v.Index(j), visit); err != nil {
				return err
			}
		}

	case reflect.String:
		if v.CanSet() {
			return visit(v)
		}
	}
	return nil
}
