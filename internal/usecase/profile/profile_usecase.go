package profile

import (
	"context"

	"github.com/skillsage/skillsage-backend/internal/domain"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	Location   *string `json:"location" binding:"omitempty,max=100"`
	Title      *string `json:"title" binding:"omitempty,max=100"`
	Experience *string `json:"experience" binding:"omitempty,max=50"`
	ImageURL   *string `json:"profile_image" binding:"omitempty,url"`
}

// GamificationResponse represents level/xp state
type GamificationResponse struct {
	Level       int      `json:"level"`
	XP          int      `json:"xp"`
	NextLevelXP int      `json:"next_level_xp"`
	Inventory   []string `json:"inventory"`
	Avatar      string   `json:"avatar"`
}

// XPResult reports an xp award
type XPResult struct {
	XPGained     int  `json:"xp_gained"`
	LeveledUp    bool `json:"leveled_up"`
	CurrentLevel int  `json:"current_level"`
	CurrentXP    int  `json:"current_xp"`
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of the request
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Title != nil {
		profile.Title = *req.Title
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.ImageURL != nil {
		profile.ImageURL = *req.ImageURL
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetGamification returns the user's level, xp and inventory
func (uc *ProfileUseCase) GetGamification(ctx context.Context, userID int) (*GamificationResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &GamificationResponse{
		Level:       profile.Level,
		XP:          profile.XP,
		NextLevelXP: profile.NextLevelXP(),
		Inventory:   profile.Inventory,
		Avatar:      profile.ImageURL,
	}, nil
}

// AwardXP adds xp to the user's profile, applying level-ups.
func (uc *ProfileUseCase) AwardXP(ctx context.Context, userID, amount int) (*XPResult, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	leveledUp := profile.AddXP(amount)
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return &XPResult{
		XPGained:     amount,
		LeveledUp:    leveledUp,
		CurrentLevel: profile.Level,
		CurrentXP:    profile.XP,
	}, nil
}
