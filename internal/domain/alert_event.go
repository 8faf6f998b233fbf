package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severidade dos alertas disparados pelo motor de regras. Escala própria,
// separada da severidade de atenção de um frame isolado.
const (
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// AlertEvent registra um alerta disparado para uma sessão de prova depois
// que uma regra atingiu seu limite dentro da janela observada.
type AlertEvent struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Rule      string    `json:"rule"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
