package ai

import "fmt"

// Имена бэкендов в конфигурации.
const (
	KindOllama = "ollama"
	KindChat   = "chat"
	KindMock   = "mock"
	KindNone   = "none"
)

// NewBackend собирает бэкенд по имени. Для "none" возвращается nil:
// сервис работает без генерации.
func NewBackend(kind string, ollama OllamaConfig, chat ChatConfig) (Backend, error) {
	switch kind {
	case KindOllama, "":
		return NewOllamaBackend(ollama), nil
	case KindChat:
		b, err := NewChatBackend(chat)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindMock:
		return NewMockBackend(), nil
	case KindNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown ai backend %q", kind)
}
