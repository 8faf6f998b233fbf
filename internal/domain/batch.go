package domain

import "github.com/google/uuid"

// BatchFrame é um frame de uma requisição de análise em lote.
type BatchFrame struct {
	Img       string
	SessionID *uuid.UUID
}

// BatchResult pairs one frame's outcome with its position in the batch.
// Exactly one of Analysis or Err is set.
type BatchResult struct {
	Analysis *FrameAnalysis
	Err      error
}
