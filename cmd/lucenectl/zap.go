package main

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func zapRequestID(id uuid.UUID) zap.Field {
	return zap.String("request_id", id.String())
}

func zapQuery(q string) zap.Field {
	return zap.String("query", q)
}
