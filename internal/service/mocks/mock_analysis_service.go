package mocks

import (
	"context"

	"pitchapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, startupName string) (*model.AnalysisResult, error) {
	args := m.Called(ctx, startupName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}
