package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
	"github.com/dihora04/djbook.in-sub000/pkg/utils"
)

// ProfileService owns user registration and the DJ profile lifecycle:
// edits, plan changes, admin moderation and account deletion.
type ProfileService struct {
	users       repositories.UserRepository
	djs         repositories.DJRepository
	searchIndex repositories.DJSearchRepository
	geocoder    providers.GeolocationProvider
	clock       providers.Clock
}

// NewProfileService creates a new profile service. searchIndex and
// geocoder may be nil.
func NewProfileService(
	users repositories.UserRepository,
	djs repositories.DJRepository,
	searchIndex repositories.DJSearchRepository,
	geocoder providers.GeolocationProvider,
	clock providers.Clock,
) *ProfileService {
	if clock == nil {
		clock = providers.SystemClock{}
	}
	return &ProfileService{
		users:       users,
		djs:         djs,
		searchIndex: searchIndex,
		geocoder:    geocoder,
		clock:       clock,
	}
}

// RegisterDJRequest carries a DJ registration submission
type RegisterDJRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Credential string   `json:"credential"`
	City       string   `json:"city"`
	State      string   `json:"state,omitempty"`
	Genres     []string `json:"genres"`
	EventTypes []string `json:"event_types"`
	MinFee     float64  `json:"min_fee"`
	Bio        string   `json:"bio,omitempty"`
}

// RegisterDJ creates a user with the DJ role and its profile atomically.
// The profile starts PENDING on the FREE plan and is invisible to the
// public directory until an admin approves it.
func (s *ProfileService) RegisterDJ(ctx context.Context, req *RegisterDJRequest) (*entities.User, *entities.DJProfile, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, nil, apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, nil, apperrors.NewValidationError("email is required")
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, nil, apperrors.NewValidationError("city is required")
	}

	slug, err := s.freeSlug(ctx, req.Name)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	profile := &entities.DJProfile{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Slug:           slug,
		City:           req.City,
		State:          req.State,
		Genres:         req.Genres,
		EventTypes:     req.EventTypes,
		MinFee:         req.MinFee,
		Bio:            req.Bio,
		ApprovalStatus: entities.ApprovalStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	profile.ApplyPlan(entities.PlanFree)
	s.geocodeCity(ctx, profile)

	user := &entities.User{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Credential:  req.Credential,
		Role:        entities.RoleDJ,
		DJProfileID: &profile.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	profile.UserID = user.ID

	if err := s.djs.Create(ctx, profile); err != nil {
		return nil, nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if delErr := s.djs.Delete(ctx, profile.ID); delErr != nil {
			log.Error().Err(delErr).Str("dj_profile_id", profile.ID).
				Msg("failed to roll back profile after user creation failure")
		}
		return nil, nil, err
	}

	return user, profile, nil
}

// RegisterCustomer creates a customer-role user
func (s *ProfileService) RegisterCustomer(ctx context.Context, name, email, credential string) (*entities.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	now := s.clock.Now()
	user := &entities.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Credential: credential,
		Role:       entities.RoleCustomer,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileRequest carries editable profile fields. Nil pointers leave
// the current value untouched.
type UpdateProfileRequest struct {
	Name         *string   `json:"name,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	Genres       *[]string `json:"genres,omitempty"`
	EventTypes   *[]string `json:"event_types,omitempty"`
	MinFee       *float64  `json:"min_fee,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Gallery      *[]string `json:"gallery,omitempty"`
	Videos       *[]string `json:"videos,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	CoverImage   *string   `json:"cover_image,omitempty"`
	LiveStatus   *string   `json:"live_status,omitempty"`
}

// UpdateProfile applies a partial edit to a DJ's own profile
func (s *ProfileService) UpdateProfile(ctx context.Context, djProfileID string, req *UpdateProfileRequest) (*entities.DJProfile, error) {
	profile, err := s.djs.GetByID(ctx, djProfileID)
	if err != nil {
		return nil, err
	}

	cityChanged := false
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.City != nil && *req.City != profile.City {
		profile.City = *req.City
		cityChanged = true
	}
	if req.State != nil {
		profile.State = *req.State
	}
	if req.Genres != nil {
		profile.Genres = *req.Genres
	}
	if req.EventTypes != nil {
		profile.EventTypes = *req.EventTypes
	}
	if req.MinFee != nil {
		profile.MinFee = *req.MinFee
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Gallery != nil {
		profile.Gallery = *req.Gallery
	}
	if req.Videos != nil {
		profile.Videos = *req.Videos
	}
	if req.ProfileImage != nil {
		profile.ProfileImage = *req.ProfileImage
	}
	if req.CoverImage != nil {
		profile.CoverImage = *req.CoverImage
	}
	if req.LiveStatus != nil {
		profile.LiveStatus = *req.LiveStatus
	}
	if cityChanged {
		s.geocodeCity(ctx, profile)
	}
	profile.UpdatedAt = s.clock.Now()

	if err := s.djs.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.reindex(ctx, profile)
	return profile, nil
}

// ChangePlan switches the subscription tier and rederives the
// verified/featured flags.
func (s *ProfileService) ChangePlan(ctx context.Context, djProfileID string, plan entities.Plan) (*entities.DJProfile, error) {
	switch plan {
	case entities.PlanFree, entities.PlanPro, entities.PlanElite:
	default:
		return nil, apperrors.NewValidationError("unknown plan")
	}

	profile, err := s.djs.GetByID(ctx, djProfileID)
	if err != nil {
		return nil, err
	}
	profile.ApplyPlan(plan)
	profile.UpdatedAt = s.clock.Now()

	if err := s.djs.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.reindex(ctx, profile)
	return profile, nil
}

// SetApproval moves a profile through the admin moderation gate. Approval
// adds the profile to the search index; rejection removes it.
func (s *ProfileService) SetApproval(ctx context.Context, djProfileID string, status entities.ApprovalStatus) (*entities.DJProfile, error) {
	switch status {
	case entities.ApprovalStatusApproved, entities.ApprovalStatusRejected, entities.ApprovalStatusPending:
	default:
		return nil, apperrors.NewValidationError("unknown approval status")
	}

	profile, err := s.djs.GetByID(ctx, djProfileID)
	if err != nil {
		return nil, err
	}
	profile.ApprovalStatus = status
	profile.UpdatedAt = s.clock.Now()

	if err := s.djs.Update(ctx, profile); err != nil {
		return nil, err
	}

	if s.searchIndex != nil {
		if status == entities.ApprovalStatusApproved {
			s.reindex(ctx, profile)
		} else if err := s.searchIndex.Delete(ctx, profile.ID); err != nil {
			log.Warn().Err(err).Str("dj_profile_id", profile.ID).Msg("failed to remove profile from search index")
		}
	}
	return profile, nil
}

// DeleteDJ removes a DJ profile and cascades to the owning user account
func (s *ProfileService) DeleteDJ(ctx context.Context, djProfileID string) error {
	profile, err := s.djs.GetByID(ctx, djProfileID)
	if err != nil {
		return err
	}

	if err := s.djs.Delete(ctx, djProfileID); err != nil {
		return err
	}
	if profile.UserID != "" {
		if err := s.users.Delete(ctx, profile.UserID); err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return err
		}
	}
	if s.searchIndex != nil {
		if err := s.searchIndex.Delete(ctx, djProfileID); err != nil {
			log.Warn().Err(err).Str("dj_profile_id", djProfileID).Msg("failed to remove profile from search index")
		}
	}
	return nil
}

// ListPending lists profiles awaiting moderation
func (s *ProfileService) ListPending(ctx context.Context, limit, offset int) ([]*entities.DJProfile, error) {
	return s.djs.List(ctx, repositories.DJFilter{
		ApprovalStatus: entities.ApprovalStatusPending,
		Limit:          limit,
		Offset:         offset,
	})
}

func (s *ProfileService) freeSlug(ctx context.Context, name string) (string, error) {
	var checkErr error
	slug := utils.UniqueSlug(name, func(candidate string) bool {
		if checkErr != nil {
			return false
		}
		exists, err := s.djs.SlugExists(ctx, candidate)
		if err != nil {
			checkErr = err
			return false
		}
		return exists
	})
	if checkErr != nil {
		return "", checkErr
	}
	return slug, nil
}

func (s *ProfileService) geocodeCity(ctx context.Context, profile *entities.DJProfile) {
	if s.geocoder == nil {
		return
	}
	address := profile.City
	if profile.State != "" {
		address += ", " + profile.State
	}
	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Warn().Err(err).Str("city", profile.City).Msg("failed to geocode profile city")
		return
	}
	profile.Location = &entities.Location{
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}
}

func (s *ProfileService) reindex(ctx context.Context, profile *entities.DJProfile) {
	if s.searchIndex == nil || !profile.PubliclyVisible() {
		return
	}
	if err := s.searchIndex.Index(ctx, profile); err != nil {
		log.Warn().Err(err).Str("dj_profile_id", profile.ID).Msg("failed to reindex profile")
	}
}
