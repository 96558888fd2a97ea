package mocks

import (
	"context"

	"pitchapi/internal/model"
	"pitchapi/internal/validator"

	"github.com/stretchr/testify/mock"
)

type MockAnalyst struct {
	mock.Mock
}

func (m *MockAnalyst) Analyze(ctx context.Context, startupName string, docs []validator.Document) (*model.AnalysisResult, error) {
	args := m.Called(ctx, startupName, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}
