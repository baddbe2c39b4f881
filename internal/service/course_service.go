package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/jys-academy-api/internal/dto"
	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/repository"
)

// Catalog is the fixed list of programmes offered by the academy.
var Catalog = []models.Course{
	{
		Name:        "Cursos para Niños (Kids English)",
		Description: "Clases dinámicas con juegos, canciones y actividades que estimulan el aprendizaje natural del idioma para niños desde los 5 años.",
	},
	{
		Name:        "Cursos para Adolescentes (Teens English)",
		Description: "Clases enfocadas en comunicación real, adaptadas a los intereses de los adolescentes de 12 a 17 años.",
	},
	{
		Name:        "Cursos para Adultos (Adults English)",
		Description: "Ideal para quienes desean retomar el inglés, viajar, o mejorar su desempeño profesional.",
	},
	{
		Name:        "Inglés para Empresas (Business English)",
		Description: "Entrenamiento lingüístico personalizado para equipos de trabajo y comunicación profesional.",
	},
	{
		Name:        "Cursos Intensivos",
		Description: "Programas acelerados para quienes necesitan resultados rápidos en 1 a 3 meses.",
	},
	{
		Name:        "Preparación para Exámenes Internacionales",
		Description: "Clases enfocadas en estrategias de examen para Cambridge, TOEFL, IELTS, Trinity.",
	},
}

// CourseService manages the course catalog.
type CourseService interface {
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (models.Course, error)
	SeedCatalog(ctx context.Context) (dto.SeedCatalogResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type courseService struct {
	repo     repository.CourseRepository
	activity ActivityRecorder
	logger   zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo repository.CourseRepository, activity ActivityRecorder, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:     repo,
		activity: activity,
		logger:   logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponses(courses), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (models.Course, error) {
	if id == 0 {
		return models.Course{}, ErrCourseNotFound
	}
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}
	return course, nil
}

// SeedCatalog creates every catalog course that does not exist yet. Running it again changes nothing.
func (s *courseService) SeedCatalog(ctx context.Context) (dto.SeedCatalogResponse, error) {
	response := dto.SeedCatalogResponse{Items: make([]dto.SeedItemResult, 0, len(Catalog))}

	for _, entry := range Catalog {
		course := entry
		created, err := s.repo.FirstOrCreateByName(ctx, &course)
		if err != nil {
			return response, err
		}

		status := dto.SeedStatusExists
		if created {
			status = dto.SeedStatusCreated
			response.Created++
		} else {
			response.Existing++
		}
		response.Items = append(response.Items, dto.SeedItemResult{Name: course.Name, Status: status})
	}

	s.logger.Info().Int("created", response.Created).Int("existing", response.Existing).Msg("course catalog seeded")
	return response, nil
}

func (s *courseService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	recordActivity(ctx, s.activity, s.logger, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "course.deleted",
		EntityType: "course",
		EntityID:   uintPtr(id),
		Metadata:   map[string]interface{}{"course_id": strconv.FormatUint(uint64(id), 10)},
	})
	return nil
}
