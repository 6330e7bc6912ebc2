package injector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/raywall/fast-mock-toolkit/pkg/cloud/cloudtest"
	"github.com/raywall/fast-mock-toolkit/pkg/config/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	Name        string            `yaml:"name" env:"SERVICE_NAME"` // Caso 1: Tag
	Upstream    string            `yaml:"upstream"`                // Caso 2: Interpolação "${env.KEY}"
	Description string            `yaml:"description"`             // Caso 3: Texto misto
	Headers     map[string]string // Caso 4: Mapa
	Routes      []string
	Port        int  `env:"TEST_PORT"`
	Disabled    bool `env:"TEST_DISABLED"`
	Nested      *NestedConfig
}

type NestedConfig struct {
	URL string
}

func TestInjector_Inject_Environment(t *testing.T) {
	t.Setenv("SERVICE_NAME", "mock-api")
	t.Setenv("UPSTREAM", "http://localhost:9000")
	t.Setenv("REGION", "sa-east-1")
	t.Setenv("TEST_PORT", "8181")
	t.Setenv("TEST_DISABLED", "true")

	inj := injector.New()

	target := &TestConfig{
		Name:        "Placeholder",
		Upstream:    "${env.UPSTREAM}",
		Description: "Mock running in ${env.REGION}",
		Headers:     map[string]string{"x-region": "${env.REGION}"},
		Routes:      []string{"${env.REGION}.users"},
		Nested:      &NestedConfig{URL: "https://${env.REGION}.api.com"},
	}

	err := inj.Inject(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "mock-api", target.Name, "Tag env não funcionou")
	assert.Equal(t, "http://localhost:9000", target.Upstream, "Interpolação direta falhou")
	assert.Equal(t, "Mock running in sa-east-1", target.Description, "Interpolação mista falhou")
	assert.Equal(t, "sa-east-1", target.Headers["x-region"], "Interpolação em mapa falhou")
	assert.Equal(t, "sa-east-1.users", target.Routes[0], "Interpolação em slice falhou")
	assert.Equal(t, "https://sa-east-1.api.com", target.Nested.URL, "Interpolação aninhada falhou")
	assert.Equal(t, 8181, target.Port)
	assert.True(t, target.Disabled)
}

func TestInjector_Inject_InvalidEnvTag(t *testing.T) {
	t.Setenv("TEST_PORT", "oito")
	err := injector.New().Inject(context.Background(), &TestConfig{})
	assert.Error(t, err)
}

func TestInjector_Inject_AWS(t *testing.T) {
	ctx := context.Background()

	ssmMock := new(cloudtest.MockSSM)
	ssmMock.On("GetParameter", ctx, mock.MatchedBy(func(in *ssm.GetParameterInput) bool {
		return *in.Name == "/mock/upstream"
	})).Return(&ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String("http://real-api")}}, nil)

	secretsMock := new(cloudtest.MockSecrets)
	secretsMock.On("GetSecretValue", ctx, mock.Anything).
		Return(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("hunter2")}, nil)

	inj := &injector.Injector{SSM: ssmMock, Secrets: secretsMock}
	target := &TestConfig{
		Upstream:    "${ssm./mock/upstream}",
		Description: "redis://:${secret.redis}@cache:6379",
	}

	require.NoError(t, inj.Inject(ctx, target))
	assert.Equal(t, "http://real-api", target.Upstream)
	assert.Equal(t, "redis://:hunter2@cache:6379", target.Description)
	ssmMock.AssertExpectations(t)
	secretsMock.AssertExpectations(t)
}

func TestInjector_Inject_AWSFailure(t *testing.T) {
	ctx := context.Background()
	ssmMock := new(cloudtest.MockSSM)
	ssmMock.On("GetParameter", ctx, mock.Anything).Return(nil, errors.New("ParameterNotFound"))

	inj := &injector.Injector{SSM: ssmMock}
	err := inj.Inject(ctx, &TestConfig{Upstream: "${ssm./nope}"})
	assert.ErrorContains(t, err, "ParameterNotFound")
}

func TestInjector_Inject_RequiresPointer(t *testing.T) {
	err := injector.New().Inject(context.Background(), TestConfig{})
	assert.Error(t, err)
}
