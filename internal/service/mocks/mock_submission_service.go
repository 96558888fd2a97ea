package mocks

import (
	"context"

	"pitchapi/internal/model"
	"pitchapi/internal/service"
	"pitchapi/internal/validator"

	"github.com/stretchr/testify/mock"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, in service.SubmitInput) (*service.SubmitResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockSubmissionService) Validate(ctx context.Context, startupName string, files []validator.Document) validator.Verdict {
	args := m.Called(ctx, startupName, files)
	return args.Get(0).(validator.Verdict)
}

func (m *MockSubmissionService) Get(ctx context.Context, submissionID string) (*model.Submission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionService) List(ctx context.Context, limit, offset int) (*service.SubmissionListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionListResult), args.Error(1)
}

func (m *MockSubmissionService) Search(ctx context.Context, query string) ([]model.StartupRef, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StartupRef), args.Error(1)
}

func (m *MockSubmissionService) Stats(ctx context.Context) (*model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stats), args.Error(1)
}

func (m *MockSubmissionService) FileURL(ctx context.Context, submissionID string, fileID int64) (string, error) {
	args := m.Called(ctx, submissionID, fileID)
	return args.String(0), args.Error(1)
}
