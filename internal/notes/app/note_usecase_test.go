package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"technotes/internal/notes/app"
	"technotes/internal/notes/app/dto"
	"technotes/internal/notes/domain/entities"
	"technotes/internal/notes/ports/repositories"
)

var (
	ErrDatabaseOperation = errors.New("database error")
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) FindAll(ctx context.Context) ([]*entities.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) FindByID(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) FindByTitleFold(ctx context.Context, titleFold string) (*entities.Note, error) {
	args := m.Called(ctx, titleFold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (string, error) {
	args := m.Called(ctx, note)
	return args.String(0), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID string) error {
	return m.Called(ctx, noteID).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

func TestNewNoteUseCase(t *testing.T) {
	useCase := app.NewNoteUseCase(new(mockNoteRepository), new(mockUserRepository), nil)

	assert.NotNil(t, useCase, "NewNoteUseCase should return a non-nil object")
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("error - empty store", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockUsers := new(mockUserRepository)
		mockRepo.On("FindAll", mock.Anything).Return([]*entities.Note{}, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, mockUsers, nil)
		views, err := useCase.ListNotes(ctx)

		require.ErrorIs(t, err, app.ErrNoNotes)
		assert.Nil(t, views)
		mockUsers.AssertNotCalled(t, "FindByID")
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - usernames resolved, order preserved", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockUsers := new(mockUserRepository)

		notes := []*entities.Note{
			{ID: "n1", UserID: "u1", Title: "First", Text: "a"},
			{ID: "n2", UserID: "u2", Title: "Second", Text: "b"},
			{ID: "n3", UserID: "u1", Title: "Third", Text: "c"},
		}
		mockRepo.On("FindAll", mock.Anything).Return(notes, nil).Once()
		mockUsers.On("FindByID", mock.Anything, "u1").
			Return(&entities.User{ID: "u1", Username: "alice"}, nil).Twice()
		mockUsers.On("FindByID", mock.Anything, "u2").
			Return(&entities.User{ID: "u2", Username: "bob"}, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, mockUsers, nil)
		views, err := useCase.ListNotes(ctx)

		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, []string{"n1", "n2", "n3"},
			[]string{views[0].ID, views[1].ID, views[2].ID})
		assert.Equal(t, "alice", views[0].User)
		assert.Equal(t, "bob", views[1].User)
		assert.Equal(t, "alice", views[2].User)
		mockRepo.AssertExpectations(t)
		mockUsers.AssertExpectations(t)
	})

	t.Run("error - one resolution fails, whole list fails", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockUsers := new(mockUserRepository)

		notes := []*entities.Note{
			{ID: "n1", UserID: "u1", Title: "First"},
			{ID: "n2", UserID: "missing", Title: "Second"},
		}
		mockRepo.On("FindAll", mock.Anything).Return(notes, nil).Once()
		mockUsers.On("FindByID", mock.Anything, "u1").
			Return(&entities.User{ID: "u1", Username: "alice"}, nil).Maybe()
		mockUsers.On("FindByID", mock.Anything, "missing").Return(nil, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, mockUsers, nil)
		views, err := useCase.ListNotes(ctx)

		require.Error(t, err)
		assert.Nil(t, views)
	})

	t.Run("success - cache hit skips user repository", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockUsers := new(mockUserRepository)
		usernameCache := new(mockCache)

		notes := []*entities.Note{{ID: "n1", UserID: "u1", Title: "First"}}
		mockRepo.On("FindAll", mock.Anything).Return(notes, nil).Once()
		usernameCache.On("Get", mock.Anything, "user:username:u1").Return("alice", nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, mockUsers, usernameCache)
		views, err := useCase.ListNotes(ctx)

		require.NoError(t, err)
		assert.Equal(t, "alice", views[0].User)
		mockUsers.AssertNotCalled(t, "FindByID")
		usernameCache.AssertExpectations(t)
	})

	t.Run("success - cache miss falls back and backfills", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockUsers := new(mockUserRepository)
		usernameCache := new(mockCache)

		notes := []*entities.Note{{ID: "n1", UserID: "u1", Title: "First"}}
		mockRepo.On("FindAll", mock.Anything).Return(notes, nil).Once()
		usernameCache.On("Get", mock.Anything, "user:username:u1").Return("", nil).Once()
		mockUsers.On("FindByID", mock.Anything, "u1").
			Return(&entities.User{ID: "u1", Username: "alice"}, nil).Once()
		usernameCache.On("Set", mock.Anything, "user:username:u1", "alice", time.Duration(0)).
			Return(nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, mockUsers, usernameCache)
		views, err := useCase.ListNotes(ctx)

		require.NoError(t, err)
		assert.Equal(t, "alice", views[0].User)
		mockUsers.AssertExpectations(t)
		usernameCache.AssertExpectations(t)
	})
}

func TestCreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("error - missing fields, no repository call", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)

		for _, req := range []*dto.CreateNoteRequest{
			{User: "", Title: "Trip", Text: "pack bags"},
			{User: "u1", Title: "", Text: "pack bags"},
			{User: "u1", Title: "Trip", Text: ""},
		} {
			err := useCase.CreateNote(ctx, req)
			require.ErrorIs(t, err, app.ErrMissingFields)
		}

		mockRepo.AssertNotCalled(t, "FindByTitleFold")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("error - duplicate title regardless of casing", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		existing := &entities.Note{ID: "n1", Title: "Trip", TitleFold: "trip"}
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").Return(existing, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		err := useCase.CreateNote(ctx, &dto.CreateNoteRequest{User: "u2", Title: "TRIP", Text: "x"})

		require.ErrorIs(t, err, app.ErrDuplicateTitle)
		mockRepo.AssertNotCalled(t, "Create")
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - concurrent writer loses to unique index", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").Return(nil, nil).Once()
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return("", repositories.ErrDuplicateTitle).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		err := useCase.CreateNote(ctx, &dto.CreateNoteRequest{User: "u1", Title: "Trip", Text: "x"})

		require.ErrorIs(t, err, app.ErrDuplicateTitle)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - repository rejects note data", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").Return(nil, nil).Once()
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return("", ErrDatabaseOperation).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		err := useCase.CreateNote(ctx, &dto.CreateNoteRequest{User: "u1", Title: "Trip", Text: "x"})

		require.ErrorIs(t, err, app.ErrInvalidNoteData)
	})

	t.Run("success - note starts uncompleted with folded title", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").Return(nil, nil).Once()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.UserID == "u1" && n.Title == "Trip" && n.TitleFold == "trip" &&
				n.Text == "pack bags" && !n.Completed
		})).Return("n1", nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		err := useCase.CreateNote(ctx, &dto.CreateNoteRequest{User: "u1", Title: "Trip", Text: "pack bags"})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func boolPtr(b bool) *bool { return &b }

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()

	validReq := func() *dto.UpdateNoteRequest {
		return &dto.UpdateNoteRequest{
			ID: "n1", User: "u1", Title: "Trip", Text: "pack bags v2", Completed: boolPtr(true),
		}
	}

	t.Run("error - missing fields, no repository call", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)

		reqs := []*dto.UpdateNoteRequest{
			{User: "u1", Title: "Trip", Text: "x", Completed: boolPtr(true)},
			{ID: "n1", Title: "Trip", Text: "x", Completed: boolPtr(true)},
			{ID: "n1", User: "u1", Text: "x", Completed: boolPtr(true)},
			{ID: "n1", User: "u1", Title: "Trip", Completed: boolPtr(true)},
			{ID: "n1", User: "u1", Title: "Trip", Text: "x", Completed: nil},
		}
		for _, req := range reqs {
			_, err := useCase.UpdateNote(ctx, req)
			require.ErrorIs(t, err, app.ErrMissingFields)
		}

		mockRepo.AssertNotCalled(t, "FindByID")
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("error - note not found", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, "n1").Return(nil, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		_, err := useCase.UpdateNote(ctx, validReq())

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("error - title collides with different note", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, "n1").
			Return(&entities.Note{ID: "n1", Title: "Old"}, nil).Once()
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").
			Return(&entities.Note{ID: "n2", Title: "trip"}, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		_, err := useCase.UpdateNote(ctx, validReq())

		require.ErrorIs(t, err, app.ErrDuplicateTitle)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("success - note keeps its own title", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, "n1").
			Return(&entities.Note{ID: "n1", UserID: "u1", Title: "Trip", TitleFold: "trip"}, nil).Once()
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").
			Return(&entities.Note{ID: "n1", Title: "Trip"}, nil).Once()
		mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		title, err := useCase.UpdateNote(ctx, validReq())

		require.NoError(t, err)
		assert.Equal(t, "Trip", title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - all five fields replaced", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, "n1").
			Return(&entities.Note{ID: "n1", UserID: "old-user", Title: "Old", TitleFold: "old",
				Text: "old text", Completed: false}, nil).Once()
		mockRepo.On("FindByTitleFold", mock.Anything, "trip").Return(nil, nil).Once()
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.ID == "n1" && n.UserID == "u1" && n.Title == "Trip" &&
				n.TitleFold == "trip" && n.Text == "pack bags v2" && n.Completed
		})).Return(nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		title, err := useCase.UpdateNote(ctx, validReq())

		require.NoError(t, err)
		assert.Equal(t, "Trip", title)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("error - missing id", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)

		_, err := useCase.DeleteNote(ctx, &dto.DeleteNoteRequest{})

		require.ErrorIs(t, err, app.ErrMissingID)
		mockRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("error - note not found, no delete issued", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, "n1").Return(nil, nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		_, err := useCase.DeleteNote(ctx, &dto.DeleteNoteRequest{ID: "n1"})

		require.ErrorIs(t, err, app.ErrNoteNotFound)
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("success - confirmation names title and id", func(t *testing.T) {
		mockRepo := new(mockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, "n1").
			Return(&entities.Note{ID: "n1", Title: "Trip"}, nil).Once()
		mockRepo.On("Delete", mock.Anything, "n1").Return(nil).Once()

		useCase := app.NewNoteUseCase(mockRepo, new(mockUserRepository), nil)
		reply, err := useCase.DeleteNote(ctx, &dto.DeleteNoteRequest{ID: "n1"})

		require.NoError(t, err)
		assert.Equal(t, "Note 'Trip' with ID n1 deleted", reply)
		mockRepo.AssertExpectations(t)
	})
}
