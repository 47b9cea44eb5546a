package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/carepoint/medibill/internal/user"
)

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "pharmacist@example.com").Return(nil, user.ErrNotFound)
	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.NotEqual(t, "s3cret", u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))

			u.ID = uuid.New()
			return nil
		})

	svc := user.NewService(repo)
	u, err := svc.Register(context.Background(), user.RegisterParams{
		Name:     "Pharmacist",
		Email:    "pharmacist@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
}

func TestService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "pharmacist@example.com").
		Return(&user.User{ID: uuid.New()}, nil)

	svc := user.NewService(repo)
	_, err := svc.Register(context.Background(), user.RegisterParams{
		Email:    "pharmacist@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{ID: uuid.New(), Email: "admin@example.com", PasswordHash: string(hash)}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "admin@example.com",
			password: "s3cret",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "admin@example.com",
			password: "nope",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(stored, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@example.com",
			password: "s3cret",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Run("SeedsWhenMissing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		// Once for EnsureAdmin, once inside Register.
		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(nil, user.ErrNotFound).Times(2)
		repo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.True(t, u.IsAdmin)
				return nil
			})

		svc := user.NewService(repo)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "s3cret"))
	})

	t.Run("SkipsWhenPresent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(&user.User{}, nil)

		svc := user.NewService(repo)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "s3cret"))
	})

	t.Run("SkipsWithoutPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)

		svc := user.NewService(repo)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", ""))
	})
}
