package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/fast-mock-toolkit/pkg/cloud/cloudtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: "1.0"
service:
  name: mock-api
  runtime: local
  port: 8080
  logging:
    enabled: true
    level: debug
    format: console
mock:
  delete_mutates: false
  unhandled_policy: error
  upstream: ${env.MOCK_TEST_UPSTREAM}
  latency_overrides:
    users.list: 10ms
faults:
  - id: slow-posts
    routes: [posts.list]
    when: "query.page == '9'"
    status: 503
    code: UNAVAILABLE
    delay_ms: 100
`

func TestLoader_LoadFile(t *testing.T) {
	t.Setenv("MOCK_TEST_UPSTREAM", "http://localhost:9999")
	path := filepath.Join(t.TempDir(), "mock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	for _, src := range []string{path, "file://" + path} {
		cfg, err := Load(context.Background(), src)
		require.NoError(t, err)

		assert.Equal(t, "mock-api", cfg.Service.Name)
		assert.False(t, cfg.Mock.DeleteMutatesOrDefault())
		assert.Equal(t, "error", cfg.Mock.Policy())
		assert.Equal(t, "http://localhost:9999", cfg.Mock.Upstream)
		assert.Equal(t, 10*time.Millisecond, cfg.Mock.Latencies()["users.list"])
		require.Len(t, cfg.FaultRules(), 1)
		assert.Equal(t, 503, cfg.FaultRules()[0].Status)
	}
}

func TestLoader_LoadS3(t *testing.T) {
	ctx := context.Background()
	m := new(cloudtest.MockS3)
	m.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == "configs" && *in.Key == "mock.yaml"
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(sampleYAML))}, nil)

	l := NewLoader()
	l.S3 = m
	cfg, err := l.Load(ctx, "s3://configs/mock.yaml")
	require.NoError(t, err)
	assert.Equal(t, "mock-api", cfg.Service.Name)
	m.AssertExpectations(t)
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = NewLoader().Parse(ctx, []byte("version: [unclosed"))
	assert.ErrorContains(t, err, "YAML malformado")

	_, err = NewLoader().Parse(ctx, []byte("version: \"1\"\nservice:\n  name: x\n  runtime: mars\n"))
	assert.ErrorContains(t, err, "validação")
}
