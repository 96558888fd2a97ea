package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pitchapi/internal/metrics"
	"pitchapi/internal/model"
	"pitchapi/internal/repository"
	repoMocks "pitchapi/internal/repository/mocks"
	"pitchapi/internal/storage"
	storeMocks "pitchapi/internal/storage/mocks"
	"pitchapi/internal/validator"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const financialText = "TechStart balance sheet: assets, liabilities, equity. Revenue and profit forecast."

func financialDoc(name string) validator.Document {
	return validator.Document{Filename: name, ContentType: "text/plain", Content: []byte(financialText)}
}

func echoKey(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
	return storage.ObjectInfo{Key: key}
}

func TestSubmissionService_Submit(t *testing.T) {
	ctx := context.Background()

	validInput := SubmitInput{
		StartupName:   "  TechStart ",
		SubmitterName: "Ada",
		Files:         []validator.Document{financialDoc("Deck.TXT")},
	}

	tests := []struct {
		name       string
		input      SubmitInput
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "happy path",
			input: validInput,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository) {
				mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "submissions/") && strings.HasSuffix(key, ".txt")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.Size == int64(len(financialText)) &&
						opt.ContentType == "text/plain" &&
						opt.Metadata["original-filename"] == "Deck.TXT"
				})).Return(echoKey, nil).Once()
				mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, "/metadata.json")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "application/json"
				})).Return(echoKey, nil).Once()

				mRepo.On("Create", mock.Anything, mock.MatchedBy(func(sub *model.Submission) bool {
					return sub.StartupName == "TechStart" &&
						sub.Status == model.SubmissionStatusSubmitted &&
						len(sub.Files) == 1 &&
						sub.Files[0].OriginalName == "Deck.TXT" &&
						strings.HasPrefix(sub.Files[0].StoragePath, "submissions/"+sub.SubmissionID+"/")
				})).Return(func(_ context.Context, sub *model.Submission) *model.Submission {
					out := *sub
					out.ID = 42
					return &out
				}, nil)
			},
		},
		{
			name:    "missing startup name",
			input:   SubmitInput{SubmitterName: "Ada", Files: validInput.Files},
			wantErr: ErrStartupNameRequired,
		},
		{
			name:    "missing submitter name",
			input:   SubmitInput{StartupName: "TechStart", Files: validInput.Files},
			wantErr: ErrSubmitterNameRequired,
		},
		{
			name:    "no files",
			input:   SubmitInput{StartupName: "TechStart", SubmitterName: "Ada"},
			wantErr: ErrNoFiles,
		},
		{
			name:  "storage error",
			input: validInput,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository) {
				mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:  "metadata upload error removes stored files",
			input: validInput,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository) {
				mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, ".txt")
				}), mock.Anything, mock.Anything).Return(echoKey, nil).Once()
				mStore.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, "metadata.json")
				}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket gone")).Once()
				mStore.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, ".txt")
				})).Return(nil).Once()
			},
			wantErrMsg: "upload metadata: bucket gone",
		},
		{
			name:  "repository error with successful rollback",
			input: validInput,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository) {
				mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(echoKey, nil)
				mRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", mock.Anything, mock.Anything).Return(nil).Twice()
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:  "repository error with failed rollback",
			input: validInput,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockSubmissionRepository) {
				mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(echoKey, nil)
				mRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", mock.Anything, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockSubmissionRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(mStore, mRepo)
			}
			svc := NewSubmissionService(mStore, mRepo, validator.New(), nil, time.UTC)

			res, err := svc.Submit(ctx, tt.input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
				assert.Nil(t, res)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(42), res.Submission.ID)
				_, perr := uuid.Parse(res.Submission.SubmissionID)
				assert.NoError(t, perr)
				assert.True(t, res.Verdict.IsValid)
				assert.False(t, res.Timestamp.IsZero())
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestSubmissionService_Submit_RejectsInvalidDocuments(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockSubmissionRepository)
	reg := prometheus.NewRegistry()
	pipeline, err := metrics.NewPipeline(reg)
	require.NoError(t, err)
	svc := NewSubmissionService(mStore, mRepo, validator.New(), pipeline, time.UTC)

	res, err := svc.Submit(context.Background(), SubmitInput{
		StartupName:   "TechStart",
		SubmitterName: "Ada",
		Files: []validator.Document{
			financialDoc("deck.txt"),
			{Filename: "diary.txt", Content: []byte("my vacation diary with family photos")},
		},
	})

	assert.Nil(t, res)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.Verdict.IsValid)
	require.Len(t, verr.Verdict.Errors, 1)
	assert.Contains(t, verr.Verdict.Errors[0], "diary.txt")
	assert.Contains(t, err.Error(), "validation failed: ")

	mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	n, err := testutil.GatherAndCount(reg, "validation_file_rejections_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubmissionService_Validate(t *testing.T) {
	svc := NewSubmissionService(nil, nil, validator.New(), nil, nil)

	v := svc.Validate(context.Background(), " TechStart ", []validator.Document{financialDoc("a.txt")})

	assert.True(t, v.IsValid)
	require.Len(t, v.FileAnalyses, 1)
	assert.True(t, v.FileAnalyses[0].StartupConsistent)
}

func TestSubmissionService_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		mRepo.On("FindBySubmissionID", ctx, id).Return(&model.Submission{SubmissionID: id}, nil)
		svc := NewSubmissionService(nil, mRepo, nil, nil, nil)

		sub, err := svc.Get(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, sub.SubmissionID)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := NewSubmissionService(nil, new(repoMocks.MockSubmissionRepository), nil, nil, nil)
		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidSubmissionID)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		mRepo.On("FindBySubmissionID", ctx, id).Return(nil, sql.ErrNoRows)
		svc := NewSubmissionService(nil, mRepo, nil, nil, nil)

		_, err := svc.Get(ctx, id)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockSubmissionRepository)
		mRepo.On("FindBySubmissionID", ctx, id).Return(nil, errors.New("db down"))
		svc := NewSubmissionService(nil, mRepo, nil, nil, nil)

		_, err := svc.Get(ctx, id)

		assert.EqualError(t, err, "db down")
	})
}

func TestSubmissionService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockSubmissionRepository)
	svc := NewSubmissionService(nil, mRepo, nil, nil, nil)

	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.SubmissionSummary]{
			Items: []model.SubmissionSummary{{StartupName: "TechStart", FilesCount: 2}},
			Total: 1,
		}, nil)

	res, err := svc.List(ctx, 0, -5)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 2, res.Items[0].FilesCount)
	mRepo.AssertExpectations(t)
}

func TestSubmissionService_Search(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockSubmissionRepository)
	svc := NewSubmissionService(nil, mRepo, nil, nil, nil)

	mRepo.On("Search", ctx, "tech", SearchLimit).Return([]model.StartupRef{{Name: "TechStart", ID: "x"}}, nil)

	refs, err := svc.Search(ctx, " tech ")
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	refs, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, refs)
	mRepo.AssertNumberOfCalls(t, "Search", 1)
}

func TestSubmissionService_Stats(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 10, 15, 1, 30, 0, 0, time.UTC) // 08:30 in loc

	mRepo := new(repoMocks.MockSubmissionRepository)
	svc := NewSubmissionService(nil, mRepo, nil, nil, loc)
	svc.(*submissionService).now = func() time.Time { return now }

	startOfDay := time.Date(2026, 10, 15, 0, 0, 0, 0, loc)
	mRepo.On("Stats", ctx, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(startOfDay)
	})).Return(&model.Stats{TotalSubmissions: 3, TotalFiles: 7, RecentSubmissionsToday: 1}, nil)

	st, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalSubmissions)
	assert.True(t, st.LastUpdated.Equal(now))
	mRepo.AssertExpectations(t)
}

func TestSubmissionService_FileURL(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()
	sub := &model.Submission{SubmissionID: id, Files: []model.SubmissionFile{
		{ID: 5, OriginalName: "deck.pdf", StoragePath: "submissions/" + id + "/a.pdf"},
	}}

	mRepo := new(repoMocks.MockSubmissionRepository)
	mRepo.On("FindBySubmissionID", ctx, id).Return(sub, nil)
	mStore := new(storeMocks.MockStorage)
	mStore.On("PresignGet", ctx, "submissions/"+id+"/a.pdf", "deck.pdf", FileURLExpiry).Return("https://minio/signed", nil)
	svc := NewSubmissionService(mStore, mRepo, nil, nil, nil)

	url, err := svc.FileURL(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, "https://minio/signed", url)

	_, err = svc.FileURL(ctx, id, 6)
	assert.ErrorIs(t, err, ErrFileNotFound)
}
