package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/cache"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrSkillNotFound = errors.New("skill not found")

type ProfileService struct {
	userRepo     repository.UserRepository
	skillRepo    repository.SkillRepository
	wantedRepo   repository.WantedSkillRepository
	languageRepo repository.LanguageRepository
	cache        *cache.Cache
}

func NewProfileService(
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	wantedRepo repository.WantedSkillRepository,
	languageRepo repository.LanguageRepository,
	c *cache.Cache,
) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		skillRepo:    skillRepo,
		wantedRepo:   wantedRepo,
		languageRepo: languageRepo,
		cache:        c,
	}
}

// Profile is a user together with everything they teach, want and speak.
type Profile struct {
	User         *domain.User          `json:"user"`
	Skills       []*domain.Skill       `json:"skills"`
	WantedSkills []*domain.WantedSkill `json:"wantedSkills"`
	Languages    []*domain.Language    `json:"languages"`
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	skills, err := s.skillRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	wanted, err := s.wantedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	languages, err := s.languageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:         user,
		Skills:       skills,
		WantedSkills: wanted,
		Languages:    languages,
	}, nil
}

type UpdateProfileInput struct {
	Name      *string
	Bio       *string
	City      *string
	Title     *string
	Interests []string
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.Title != nil {
		user.Title = *input.Title
	}
	if input.Interests != nil {
		raw, err := json.Marshal(input.Interests)
		if err != nil {
			return nil, err
		}
		user.Interests = datatypes.JSON(raw)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetImage stores the CDN location of the user's profile picture.
func (s *ProfileService) SetImage(ctx context.Context, userID uuid.UUID, url, assetID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.ImageURL = url
	user.ImageAssetID = assetID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AddSkill creates a teachable skill. A user's first skill promotes them
// to mentor.
func (s *ProfileService) AddSkill(ctx context.Context, userID uuid.UUID, name, level string) (*domain.Skill, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	skill := &domain.Skill{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Level:  level,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}

	if user.Role == domain.RoleUser || user.Role == domain.RoleStudent {
		count, err := s.skillRepo.CountByUser(ctx, userID)
		if err == nil && count == 1 {
			user.Role = domain.RoleMentor
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	s.invalidatePotential(ctx, userID)
	return skill, nil
}

func (s *ProfileService) UpdateSkill(ctx context.Context, skillID, userID uuid.UUID, name, level *string) (*domain.Skill, error) {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	if skill.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if name != nil {
		skill.Name = *name
	}
	if level != nil {
		skill.Level = *level
	}
	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}

	s.invalidatePotential(ctx, userID)
	return skill, nil
}

func (s *ProfileService) DeleteSkill(ctx context.Context, skillID, userID uuid.UUID) error {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return err
	}
	if skill.UserID != userID {
		return domain.ErrNotOwner
	}

	if err := s.skillRepo.Delete(ctx, skillID); err != nil {
		return err
	}

	s.invalidatePotential(ctx, userID)
	return nil
}

func (s *ProfileService) AddWantedSkill(ctx context.Context, userID uuid.UUID, name, level string) (*domain.WantedSkill, error) {
	skill := &domain.WantedSkill{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Level:  level,
	}
	if err := s.wantedRepo.Create(ctx, skill); err != nil {
		return nil, err
	}

	s.invalidatePotential(ctx, userID)
	return skill, nil
}

func (s *ProfileService) DeleteWantedSkill(ctx context.Context, skillID, userID uuid.UUID) error {
	skill, err := s.wantedRepo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return err
	}
	if skill.UserID != userID {
		return domain.ErrNotOwner
	}

	if err := s.wantedRepo.Delete(ctx, skillID); err != nil {
		return err
	}

	s.invalidatePotential(ctx, userID)
	return nil
}

func (s *ProfileService) AddLanguage(ctx context.Context, userID uuid.UUID, name, level string) (*domain.Language, error) {
	language := &domain.Language{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Level:  level,
	}
	if err := s.languageRepo.Create(ctx, language); err != nil {
		return nil, err
	}
	return language, nil
}

func (s *ProfileService) DeleteLanguage(ctx context.Context, languageID, userID uuid.UUID) error {
	language, err := s.languageRepo.GetByID(ctx, languageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return err
	}
	if language.UserID != userID {
		return domain.ErrNotOwner
	}
	return s.languageRepo.Delete(ctx, languageID)
}

// Skill changes invalidate the user's cached match suggestions. Other
// users' suggestion lists age out via TTL instead.
func (s *ProfileService) invalidatePotential(ctx context.Context, userID uuid.UUID) {
	_ = s.cache.Delete(ctx, potentialMatchesKey(userID))
}
