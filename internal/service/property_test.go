package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	eventMocks "realestateapi/internal/events/mocks"
	"realestateapi/internal/events"
	"realestateapi/internal/logger"
	"realestateapi/internal/model"
	"realestateapi/internal/repository"
	repoMocks "realestateapi/internal/repository/mocks"
	"realestateapi/internal/storage"
	storeMocks "realestateapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	propertyID = "507f1f77bcf86cd799439011"
	ownerID    = "507f1f77bcf86cd799439012"
)

type testDeps struct {
	repo   *repoMocks.MockPropertyRepository
	owners *repoMocks.MockOwnerRepository
	store  *storeMocks.MockStorage
	pub    *eventMocks.MockPublisher
}

func newTestService(withStore bool) (PropertyService, testDeps) {
	d := testDeps{
		repo:   new(repoMocks.MockPropertyRepository),
		owners: new(repoMocks.MockOwnerRepository),
		store:  new(storeMocks.MockStorage),
		pub:    new(eventMocks.MockPublisher),
	}
	var store storage.Storage
	if withStore {
		store = d.store
	}
	return NewPropertyService(d.repo, d.owners, store, d.pub, logger.Discard()), d
}

func (d testDeps) assertExpectations(t *testing.T) {
	d.repo.AssertExpectations(t)
	d.owners.AssertExpectations(t)
	d.store.AssertExpectations(t)
	d.pub.AssertExpectations(t)
}

func storedProperty() *model.Property {
	return &model.Property{
		ID:           propertyID,
		Name:         "Modern House",
		Address:      "North Ave 100",
		Price:        250000,
		CodeInternal: "PROP-001",
		Year:         2020,
		IDOwner:      ownerID,
		Images: []model.PropertyImage{
			{ID: "img-1", File: "disabled.jpg", Enabled: false},
			{ID: "img-2", File: "cover.jpg", Enabled: true},
		},
		Traces: []model.PropertyTrace{{ID: "trace-1", Name: "Initial sale"}},
	}
}

func TestPropertyService_List(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(d testDeps)
		wantLen    int
		wantErr    string
	}{
		{
			name: "maps every property",
			setupMocks: func(d testDeps) {
				d.repo.On("GetAll", mock.Anything).Return([]model.Property{*storedProperty(), {ID: "other"}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "empty store",
			setupMocks: func(d testDeps) {
				d.repo.On("GetAll", mock.Anything).Return([]model.Property{}, nil)
			},
			wantLen: 0,
		},
		{
			name: "store error passes through",
			setupMocks: func(d testDeps) {
				d.repo.On("GetAll", mock.Anything).Return(nil, errors.New("connection reset"))
			},
			wantErr: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(false)
			tt.setupMocks(d)

			got, err := svc.List(context.Background())

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, got)
				assert.Len(t, got, tt.wantLen)
			}
			d.assertExpectations(t)
		})
	}
}

func TestPropertyService_Search(t *testing.T) {
	svc, d := newTestService(false)
	minPrice := 100.0
	f := model.PropertyFilter{Name: "house", MinPrice: &minPrice, Page: 1, PageSize: 10}
	d.repo.On("GetFiltered", mock.Anything, f).Return([]model.Property{*storedProperty()}, nil)

	got, err := svc.Search(context.Background(), f)

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Image)
	assert.Equal(t, "cover.jpg", *got[0].Image)
	d.assertExpectations(t)
}

func TestPropertyService_Get(t *testing.T) {
	birthday := time.Date(1980, 5, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		id         string
		setupMocks func(d testDeps)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, dto *model.PropertyDto)
	}{
		{
			name: "embeds owner",
			id:   propertyID,
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.owners.On("GetByID", mock.Anything, ownerID).
					Return(&model.Owner{ID: ownerID, Name: "John Perez", Birthday: birthday}, nil)
			},
			check: func(t *testing.T, dto *model.PropertyDto) {
				require.NotNil(t, dto.Owner)
				assert.Equal(t, "John Perez", dto.Owner.Name)
				assert.Equal(t, birthday, dto.Owner.Birthday)
				require.NotNil(t, dto.Image)
				assert.Equal(t, "cover.jpg", *dto.Image)
			},
		},
		{
			name: "missing owner leaves owner empty",
			id:   propertyID,
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.owners.On("GetByID", mock.Anything, ownerID).Return(nil, repository.ErrNotFound)
			},
			check: func(t *testing.T, dto *model.PropertyDto) {
				assert.Nil(t, dto.Owner)
				assert.Equal(t, propertyID, dto.ID)
			},
		},
		{
			name: "owner lookup failure",
			id:   propertyID,
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.owners.On("GetByID", mock.Anything, ownerID).Return(nil, errors.New("timeout"))
			},
			wantErrMsg: "timeout",
		},
		{
			name: "not found",
			id:   propertyID,
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(d testDeps) {},
			wantErr:    ErrIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(false)
			tt.setupMocks(d)

			dto, err := svc.Get(context.Background(), tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, dto)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				tt.check(t, dto)
			}
			d.assertExpectations(t)
		})
	}
}

func TestPropertyService_Create(t *testing.T) {
	input := model.PropertyDto{
		ID:           "ffffffffffffffffffffffff",
		Name:         "Loft",
		Address:      "Industrial District 200",
		Price:        320000,
		CodeInternal: "PROP-004",
		Year:         2019,
		IDOwner:      ownerID,
	}

	t.Run("assigns id and publishes", func(t *testing.T) {
		svc, d := newTestService(false)
		var saved *model.Property
		d.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Property) bool {
			return model.IsValidID(p.ID) && p.ID != input.ID && len(p.Images) == 0 && len(p.Traces) == 0
		})).Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Property) }).Return(nil)
		d.pub.On("PublishPropertyEvent", mock.Anything, events.ActionCreated, mock.Anything).Return(nil)

		dto, err := svc.Create(context.Background(), input)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, saved.ID, dto.ID)
		assert.Equal(t, "Loft", dto.Name)
		assert.Nil(t, dto.Image)
		d.assertExpectations(t)
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		svc, d := newTestService(false)
		d.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		d.pub.On("PublishPropertyEvent", mock.Anything, events.ActionCreated, mock.Anything).Return(errors.New("broker down"))

		dto, err := svc.Create(context.Background(), input)

		require.NoError(t, err)
		assert.NotNil(t, dto)
		d.assertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		svc, d := newTestService(false)
		d.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate key"))

		dto, err := svc.Create(context.Background(), input)

		assert.EqualError(t, err, "duplicate key")
		assert.Nil(t, dto)
		d.pub.AssertNotCalled(t, "PublishPropertyEvent", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPropertyService_Update(t *testing.T) {
	input := model.PropertyDto{
		ID:           "ffffffffffffffffffffffff",
		Name:         "Renovated House",
		Address:      "North Ave 101",
		Price:        275000,
		CodeInternal: "PROP-001",
		Year:         2021,
		IDOwner:      ownerID,
	}

	tests := []struct {
		name       string
		setupMocks func(d testDeps)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "overlays scalars and keeps images and traces",
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Property) bool {
					return p.ID == propertyID && p.Name == "Renovated House" && len(p.Images) == 2 && len(p.Traces) == 1
				})).Return(nil)
				d.pub.On("PublishPropertyEvent", mock.Anything, events.ActionUpdated, propertyID).Return(nil)
			},
		},
		{
			name: "not found on load",
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "deleted between load and replace",
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.repo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "replace error",
			setupMocks: func(d testDeps) {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("write conflict"))
			},
			wantErrMsg: "write conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(false)
			tt.setupMocks(d)

			dto, err := svc.Update(context.Background(), propertyID, input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, dto)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, propertyID, dto.ID)
				assert.Equal(t, 275000.0, dto.Price)
				require.NotNil(t, dto.Image)
				assert.Equal(t, "cover.jpg", *dto.Image)
			}
			d.assertExpectations(t)
		})
	}
}

func TestPropertyService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMocks func(d testDeps)
		wantErr    error
	}{
		{
			name: "deleted",
			id:   propertyID,
			setupMocks: func(d testDeps) {
				d.repo.On("Delete", mock.Anything, propertyID).Return(nil)
				d.pub.On("PublishPropertyEvent", mock.Anything, events.ActionDeleted, propertyID).Return(nil)
			},
		},
		{
			name: "not found",
			id:   propertyID,
			setupMocks: func(d testDeps) {
				d.repo.On("Delete", mock.Anything, propertyID).Return(repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(d testDeps) {},
			wantErr:    ErrIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(false)
			tt.setupMocks(d)

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			d.assertExpectations(t)
		})
	}
}

func TestPropertyService_AddImage(t *testing.T) {
	tests := []struct {
		name       string
		withStore  bool
		setupMocks func(d testDeps) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name:      "happy path",
			withStore: true,
			setupMocks: func(d testDeps) io.Reader {
				r := strings.NewReader("jpeg bytes")
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "properties/"+propertyID+"/") && strings.HasSuffix(key, ".jpg")
				}), r, mock.MatchedBy(func(opt storage.PutOptions) bool {
					return opt.Size == 10 && opt.ContentType == "image/jpeg" && opt.Metadata["original-filename"] == "Front.JPG"
				})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutOptions) storage.Object {
					return storage.Object{Key: key}
				}, nil)
				d.store.On("URL", mock.Anything).Return("http://localhost:9000/images/properties/x.jpg")
				d.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Property) bool {
					return len(p.Images) == 3 && p.Images[2].File == "http://localhost:9000/images/properties/x.jpg"
				})).Return(nil)
				d.pub.On("PublishPropertyEvent", mock.Anything, events.ActionUpdated, propertyID).Return(nil)
				return r
			},
		},
		{
			name:       "storage disabled",
			withStore:  false,
			setupMocks: func(d testDeps) io.Reader { return strings.NewReader("x") },
			wantErr:    ErrStorageDisabled,
		},
		{
			name:       "nil reader",
			withStore:  true,
			setupMocks: func(d testDeps) io.Reader { return nil },
			wantErr:    ErrReaderNil,
		},
		{
			name:      "property not found",
			withStore: true,
			setupMocks: func(d testDeps) io.Reader {
				d.repo.On("GetByID", mock.Anything, propertyID).Return(nil, repository.ErrNotFound)
				return strings.NewReader("x")
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "storage error",
			withStore: true,
			setupMocks: func(d testDeps) io.Reader {
				r := strings.NewReader("x")
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.store.On("Put", mock.Anything, mock.Anything, r, mock.Anything).
					Return(storage.Object{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:      "repository error with successful rollback",
			withStore: true,
			setupMocks: func(d testDeps) io.Reader {
				r := strings.NewReader("x")
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.store.On("Put", mock.Anything, mock.Anything, r, mock.Anything).
					Return(storage.Object{Key: "properties/k.jpg"}, nil)
				d.store.On("URL", "properties/k.jpg").Return("http://cdn/properties/k.jpg")
				d.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("db fail"))
				d.store.On("Delete", mock.Anything, "properties/k.jpg").Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:      "repository error with failed rollback",
			withStore: true,
			setupMocks: func(d testDeps) io.Reader {
				r := strings.NewReader("x")
				d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
				d.store.On("Put", mock.Anything, mock.Anything, r, mock.Anything).
					Return(storage.Object{Key: "properties/k.jpg"}, nil)
				d.store.On("URL", "properties/k.jpg").Return("http://cdn/properties/k.jpg")
				d.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("db fail"))
				d.store.On("Delete", mock.Anything, "properties/k.jpg").Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(tt.withStore)
			r := tt.setupMocks(d)

			img, err := svc.AddImage(context.Background(), propertyID, r, "Front.JPG", "image/jpeg", 10, true)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, img)
			case tt.wantErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.True(t, model.IsValidID(img.ID))
				assert.True(t, img.Enabled)
				assert.Equal(t, propertyID, img.IDProperty)
			}
			d.assertExpectations(t)
		})
	}
}

func TestPropertyService_Traces(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		svc, d := newTestService(false)
		d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)

		traces, err := svc.ListTraces(context.Background(), propertyID)

		require.NoError(t, err)
		assert.Len(t, traces, 1)
		d.assertExpectations(t)
	})

	t.Run("list never returns nil", func(t *testing.T) {
		svc, d := newTestService(false)
		d.repo.On("GetByID", mock.Anything, propertyID).Return(&model.Property{ID: propertyID}, nil)

		traces, err := svc.ListTraces(context.Background(), propertyID)

		require.NoError(t, err)
		assert.NotNil(t, traces)
	})

	t.Run("add appends", func(t *testing.T) {
		svc, d := newTestService(false)
		sale := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		d.repo.On("GetByID", mock.Anything, propertyID).Return(storedProperty(), nil)
		d.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Property) bool {
			return len(p.Traces) == 2 && p.Traces[0].ID == "trace-1" && p.Traces[1].Name == "Resale"
		})).Return(nil)
		d.pub.On("PublishPropertyEvent", mock.Anything, events.ActionUpdated, propertyID).Return(nil)

		tr, err := svc.AddTrace(context.Background(), propertyID, model.TraceDto{DateSale: sale, Name: "Resale", Value: 300000, Tax: 30000})

		require.NoError(t, err)
		assert.Equal(t, propertyID, tr.IDProperty)
		assert.Equal(t, sale, tr.DateSale)
		d.assertExpectations(t)
	})

	t.Run("add to missing property", func(t *testing.T) {
		svc, d := newTestService(false)
		d.repo.On("GetByID", mock.Anything, propertyID).Return(nil, repository.ErrNotFound)

		tr, err := svc.AddTrace(context.Background(), propertyID, model.TraceDto{Name: "x"})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, tr)
	})
}
