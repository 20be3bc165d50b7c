package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

func TestCreateEmbeddingService_HuggingFace(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.EmbeddingHuggingFace,
		APIKey:   "hf-test",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Greater(t, svc.Dimensions(), 0)
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.EmbeddingOllama,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingService_NotConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
	}{
		{name: "nil settings", settings: nil},
		{name: "empty provider", settings: &domain.EmbeddingSettings{}},
		{
			name: "hosted provider without key",
			settings: &domain.EmbeddingSettings{
				Provider: domain.EmbeddingHuggingFace,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			require.NoError(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestCreateLLMService_Groq(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.LLMGroq,
		APIKey:   "gsk-test",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.NotEmpty(t, svc.ModelName())
}

func TestCreateLLMService_Ollama(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.LLMOllama,
		Model:    "llama3.2",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "llama3.2", svc.ModelName())
}

func TestCreateLLMService_NotConfigured(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.LLMGroq,
	})
	require.NoError(t, err)
	assert.Nil(t, svc)
}
