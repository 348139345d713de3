package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
)

// Verificar en tiempo de compilación que OpenAIService implementa ReadingGenerator.
var _ ports.ReadingGenerator = (*OpenAIService)(nil)

const (
	openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

	readingSystemPrompt = "You are an AI Saju (사주) assistant. Respond in Korean. " +
		"Return ONLY a single JSON object (no markdown) with the keys: " +
		"summary, personality, fortune, relationship, advice, year_pillar, month_pillar, day_pillar, hour_pillar. " +
		"Each value is a concise Korean paragraph (pillars can be simple strings). " +
		"Avoid medical/financial/legal claims. Be friendly and helpful."
)

// OpenAIService adaptador que implementa ReadingGenerator usando la API REST
// de chat completions de OpenAI. Usa net/http de la librería estándar de Go;
// no requiere el SDK oficial.
type OpenAIService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIService construye el adaptador. model suele ser "gpt-4o-mini"
// (barato, rápido y con soporte de response_format json_object).
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewOpenAIService(apiKey, model string) *OpenAIService {
	return &OpenAIService{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIChatCompletionsURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateReading envía los datos de nacimiento y la pregunta al modelo y
// devuelve la lectura estructurada. Si el modelo responde algo que no parsea
// como JSON, se devuelve una salida mínima fija para que la vista igual
// renderice.
func (s *OpenAIService) GenerateReading(ctx context.Context, in dto.ReadingRequest) (*dto.ReadingOutput, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}

	payload := chatRequest{
		Model:          s.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: readingSystemPrompt},
			{Role: "user", Content: userPrompt(in)},
		},
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta OpenAI: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("AI: el modelo devolvió respuesta vacía")
	}

	var out dto.ReadingOutput
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &out); err != nil {
		// JSON mode casi nunca falla, pero si falla la vista igual debe mostrar algo.
		return fallbackReading(), nil
	}
	return &out, nil
}

// userPrompt arma el mensaje de usuario en coreano con los datos de la petición.
func userPrompt(in dto.ReadingRequest) string {
	gender := "남성"
	if in.Gender == "F" {
		gender = "여성"
	}
	var b strings.Builder
	b.WriteString("이름: " + in.Name + "\n")
	b.WriteString("생년월일: " + in.Birthdate + "\n")
	b.WriteString("성별: " + gender + "\n")
	b.WriteString("질문: " + in.Question + "\n\n")
	b.WriteString("요청:\n- 종합 요약을 포함해 아래 필드를 꼭 JSON으로만 반환하세요.\n")
	b.WriteString(`{
  "summary": "...",
  "personality": "...",
  "fortune": "...",
  "relationship": "...",
  "advice": "...",
  "year_pillar": "정묘",
  "month_pillar": "기묘",
  "day_pillar": "신사",
  "hour_pillar": "미상"
}`)
	return b.String()
}

// fallbackReading salida mínima fija cuando el modelo no devuelve JSON válido.
func fallbackReading() *dto.ReadingOutput {
	return &dto.ReadingOutput{
		Summary:      "요청하신 내용을 바탕으로 종합 운세를 생성했습니다.",
		Personality:  "성격 분석 결과를 요약합니다.",
		Fortune:      "올해의 전반적인 흐름과 기회를 설명합니다.",
		Relationship: "인간관계와 연애운에 대한 제안을 제공합니다.",
		Advice:       "실행 가능한 조언과 주의점을 안내합니다.",
		YearPillar:   "정묘",
		MonthPillar:  "기묘",
		DayPillar:    "신사",
		HourPillar:   "미상",
	}
}
