package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"integrityapi/internal/model"
	"integrityapi/internal/scoring"
)

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Kind() scoring.Kind {
	args := m.Called()
	return args.Get(0).(scoring.Kind)
}

func (m *MockScorer) Score(ctx context.Context, text string) (model.ScoreResult, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.ScoreResult), args.Error(1)
}
