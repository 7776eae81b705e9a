package identity

import "context"

// ProfileRepository defines persistence operations for user profiles
type ProfileRepository interface {
	Save(ctx context.Context, profile *UserProfile) error
	FindByID(ctx context.Context, subjectID string) (*UserProfile, error)
	FindAll(ctx context.Context) ([]UserProfile, error)
}
