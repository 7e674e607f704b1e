package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestateapi/internal/events"
	"realestateapi/internal/mapper"
	"realestateapi/internal/model"
	"realestateapi/internal/repository"
	"realestateapi/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrStorageDisabled = errors.New("image storage is not configured")
)

// PropertyService defines the use cases for property listings.
type PropertyService interface {
	// List returns every property.
	List(ctx context.Context) ([]model.PropertyDto, error)

	// Search returns the properties matching the filter.
	Search(ctx context.Context, f model.PropertyFilter) ([]model.PropertyDto, error)

	// Get returns a single property with its owner embedded when the owner exists.
	Get(ctx context.Context, id string) (*model.PropertyDto, error)

	// Create assigns a fresh id and persists the property with no images or traces.
	Create(ctx context.Context, dto model.PropertyDto) (*model.PropertyDto, error)

	// Update overlays the scalar fields of dto onto the stored property.
	// Images and traces are preserved. Concurrent updates are last-writer-wins.
	Update(ctx context.Context, id string, dto model.PropertyDto) (*model.PropertyDto, error)

	// Delete removes a property.
	Delete(ctx context.Context, id string) error

	// AddImage uploads the content to object storage and appends it to the property's images.
	// The stored object is removed again if the property cannot be saved.
	AddImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64, enabled bool) (*model.PropertyImage, error)

	// ListTraces returns the sale history of a property.
	ListTraces(ctx context.Context, id string) ([]model.PropertyTrace, error)

	// AddTrace appends a sale record. Traces are never edited or removed.
	AddTrace(ctx context.Context, id string, dto model.TraceDto) (*model.PropertyTrace, error)
}

// propertyService is a concrete implementation of PropertyService.
type propertyService struct {
	repo      repository.PropertyRepository
	owners    repository.OwnerRepository
	store     storage.Storage
	publisher events.Publisher
	log       *slog.Logger
	tracer    trace.Tracer
}

// NewPropertyService constructs a new PropertyService.
// store may be nil, in which case AddImage returns ErrStorageDisabled.
func NewPropertyService(
	repo repository.PropertyRepository,
	owners repository.OwnerRepository,
	store storage.Storage,
	publisher events.Publisher,
	log *slog.Logger,
) PropertyService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &propertyService{
		repo:      repo,
		owners:    owners,
		store:     store,
		publisher: publisher,
		log:       log.With("component", "property_service"),
		tracer:    otel.Tracer("realestateapi/internal/service"),
	}
}

func (s *propertyService) List(ctx context.Context) ([]model.PropertyDto, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.List")
	defer span.End()

	ps, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	return mapper.ToPropertyDtos(ps), nil
}

func (s *propertyService) Search(ctx context.Context, f model.PropertyFilter) ([]model.PropertyDto, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.Search")
	defer span.End()

	ps, err := s.repo.GetFiltered(ctx, f)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("properties.count", len(ps)))
	return mapper.ToPropertyDtos(ps), nil
}

func (s *propertyService) Get(ctx context.Context, id string) (*model.PropertyDto, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.Get", trace.WithAttributes(attribute.String("property.id", id)))
	defer span.End()

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}

	dto := mapper.ToPropertyDto(*p)
	owner, err := s.owners.GetByID(ctx, p.IDOwner)
	switch {
	case err == nil:
		ownerDto := mapper.ToOwnerDto(*owner)
		dto.Owner = &ownerDto
	case errors.Is(err, repository.ErrNotFound):
		s.log.DebugContext(ctx, "owner_missing", "property_id", p.ID, "owner_id", p.IDOwner)
	default:
		return nil, fail(span, err)
	}
	return &dto, nil
}

func (s *propertyService) Create(ctx context.Context, dto model.PropertyDto) (*model.PropertyDto, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.Create")
	defer span.End()

	p := mapper.ToProperty(dto)
	p.ID = model.NewID()
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("property.id", p.ID))

	s.log.InfoContext(ctx, "property_created", "property_id", p.ID)
	s.publish(ctx, events.ActionCreated, p.ID)

	out := mapper.ToPropertyDto(p)
	return &out, nil
}

func (s *propertyService) Update(ctx context.Context, id string, dto model.PropertyDto) (*model.PropertyDto, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.Update", trace.WithAttributes(attribute.String("property.id", id)))
	defer span.End()

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}

	mapper.ApplyPropertyDto(p, dto)
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fail(span, notFound(err))
	}

	s.log.InfoContext(ctx, "property_updated", "property_id", id)
	s.publish(ctx, events.ActionUpdated, id)

	out := mapper.ToPropertyDto(*p)
	return &out, nil
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "PropertyService.Delete", trace.WithAttributes(attribute.String("property.id", id)))
	defer span.End()

	if id == "" {
		return fail(span, ErrIDRequired)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(span, notFound(err))
	}

	s.log.InfoContext(ctx, "property_deleted", "property_id", id)
	s.publish(ctx, events.ActionDeleted, id)
	return nil
}

func (s *propertyService) AddImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64, enabled bool) (*model.PropertyImage, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.AddImage", trace.WithAttributes(attribute.String("property.id", id)))
	defer span.End()

	if s.store == nil {
		return nil, fail(span, ErrStorageDisabled)
	}
	if r == nil {
		return nil, fail(span, ErrReaderNil)
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}

	key := storage.ImageKey(p.ID, uuid.NewString(), filename)
	obj, err := s.store.Put(ctx, key, r, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
			"property-id":       p.ID,
		},
	})
	if err != nil {
		return nil, fail(span, fmt.Errorf("upload to storage: %w", err))
	}

	img := model.PropertyImage{
		ID:         model.NewID(),
		File:       s.store.URL(obj.Key),
		Enabled:    enabled,
		IDProperty: p.ID,
	}
	p.Images = append(p.Images, img)

	if err := s.repo.Update(ctx, p); err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fail(span, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr))
		}
		return nil, fail(span, fmt.Errorf("db save failed: %w", notFound(err)))
	}

	s.log.InfoContext(ctx, "property_image_added", "property_id", p.ID, "image_id", img.ID, "key", obj.Key)
	s.publish(ctx, events.ActionUpdated, p.ID)
	return &img, nil
}

func (s *propertyService) ListTraces(ctx context.Context, id string) ([]model.PropertyTrace, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.ListTraces", trace.WithAttributes(attribute.String("property.id", id)))
	defer span.End()

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}
	if p.Traces == nil {
		return []model.PropertyTrace{}, nil
	}
	return p.Traces, nil
}

func (s *propertyService) AddTrace(ctx context.Context, id string, dto model.TraceDto) (*model.PropertyTrace, error) {
	ctx, span := s.tracer.Start(ctx, "PropertyService.AddTrace", trace.WithAttributes(attribute.String("property.id", id)))
	defer span.End()

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}

	tr := mapper.ToTrace(p.ID, dto)
	p.Traces = append(p.Traces, tr)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fail(span, notFound(err))
	}

	s.log.InfoContext(ctx, "property_trace_added", "property_id", p.ID, "trace_id", tr.ID)
	s.publish(ctx, events.ActionUpdated, p.ID)
	return &tr, nil
}

// load fetches a property, translating the repository's not-found error.
func (s *propertyService) load(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// publish logs and drops broker errors; the write has already been committed.
func (s *propertyService) publish(ctx context.Context, action events.Action, id string) {
	if err := s.publisher.PublishPropertyEvent(ctx, action, id); err != nil {
		s.log.WarnContext(ctx, "property_event_publish_failed",
			"action", string(action),
			"property_id", id,
			"error", err.Error(),
		)
	}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
