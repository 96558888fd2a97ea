package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	analysisMocks "pitchapi/internal/analysis/mocks"
	"pitchapi/internal/model"
	repoMocks "pitchapi/internal/repository/mocks"
	"pitchapi/internal/storage"
	storeMocks "pitchapi/internal/storage/mocks"
	"pitchapi/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedSubmission(files ...model.SubmissionFile) *model.Submission {
	return &model.Submission{
		SubmissionID: "3f9b7a2e-0000-4000-8000-000000000001",
		StartupName:  "TechStart",
		Files:        files,
	}
}

func serve(mStore *storeMocks.MockStorage, key, body string) {
	mStore.On("Get", mock.Anything, key).
		Return(io.NopCloser(strings.NewReader(body)), storage.ObjectInfo{Key: key}, nil)
}

func TestAnalysisService_Analyze(t *testing.T) {
	ctx := context.Background()
	deck := model.SubmissionFile{OriginalName: "deck.txt", StoragePath: "submissions/x/a.txt"}
	diary := model.SubmissionFile{OriginalName: "diary.txt", StoragePath: "submissions/x/b.txt"}

	tests := []struct {
		name       string
		query      string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst)
		wantErr    error
		check      func(t *testing.T, res *model.AnalysisResult, err error)
	}{
		{
			name:  "analyst result is returned",
			query: "tech",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst) {
				mRepo.On("FindByStartupName", mock.Anything, "tech").Return(storedSubmission(deck), nil)
				serve(mStore, deck.StoragePath, financialText)
				mAnalyst.On("Analyze", mock.Anything, "TechStart", mock.MatchedBy(func(docs []validator.Document) bool {
					return len(docs) == 1 && docs[0].Filename == "deck.txt" && string(docs[0].Content) == financialText
				})).Return(&model.AnalysisResult{StartupName: "TechStart", InvestmentScore: 7}, nil)
			},
			check: func(t *testing.T, res *model.AnalysisResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 7, res.InvestmentScore)
			},
		},
		{
			name:  "analyst failure degrades to fallback",
			query: "TechStart",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst) {
				mRepo.On("FindByStartupName", mock.Anything, "TechStart").Return(storedSubmission(deck), nil)
				serve(mStore, deck.StoragePath, financialText)
				mAnalyst.On("Analyze", mock.Anything, "TechStart", mock.Anything).Return(nil, errors.New("quota exceeded"))
			},
			check: func(t *testing.T, res *model.AnalysisResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Error analyzing TechStart: quota exceeded", res.Summary)
				assert.Equal(t, model.RiskHigh, res.RiskAssessment)
				assert.Equal(t, 1, res.InvestmentScore)
			},
		},
		{
			name:  "invalid documents never reach the analyst",
			query: "TechStart",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst) {
				mRepo.On("FindByStartupName", mock.Anything, "TechStart").Return(storedSubmission(deck, diary), nil)
				serve(mStore, deck.StoragePath, financialText)
				serve(mStore, diary.StoragePath, "vacation diary, family birthday and wedding photos")
			},
			check: func(t *testing.T, res *model.AnalysisResult, err error) {
				assert.Nil(t, res)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Len(t, verr.Verdict.FileAnalyses, 2)
			},
		},
		{
			name:  "unreadable objects are skipped",
			query: "TechStart",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst) {
				mRepo.On("FindByStartupName", mock.Anything, "TechStart").Return(storedSubmission(deck, diary), nil)
				serve(mStore, deck.StoragePath, financialText)
				mStore.On("Get", mock.Anything, diary.StoragePath).Return(nil, storage.ObjectInfo{}, errors.New("no such key"))
				mAnalyst.On("Analyze", mock.Anything, "TechStart", mock.MatchedBy(func(docs []validator.Document) bool {
					return len(docs) == 1
				})).Return(&model.AnalysisResult{Summary: "ok"}, nil)
			},
			check: func(t *testing.T, res *model.AnalysisResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "ok", res.Summary)
			},
		},
		{
			name:  "no stored documents",
			query: "TechStart",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst) {
				mRepo.On("FindByStartupName", mock.Anything, "TechStart").Return(storedSubmission(), nil)
			},
			wantErr: ErrNoDocuments,
		},
		{
			name:  "unknown startup",
			query: "Ghost",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository, mAnalyst *analysisMocks.MockAnalyst) {
				mRepo.On("FindByStartupName", mock.Anything, "Ghost").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:    "blank name",
			query:   "  ",
			wantErr: ErrStartupNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockSubmissionRepository)
			mAnalyst := new(analysisMocks.MockAnalyst)
			if tt.setupMocks != nil {
				tt.setupMocks(mStore, mRepo, mAnalyst)
			}
			svc := NewAnalysisService(mStore, mRepo, validator.New(), mAnalyst, nil)

			res, err := svc.Analyze(ctx, tt.query)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				tt.check(t, res, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mAnalyst.AssertExpectations(t)
		})
	}
}
